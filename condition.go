package hsm

// Condition is a nullary predicate polled during pull-mode resolution.
// Conditions should be cheap and free of side effects; they may be evaluated
// many times per tick and are skipped entirely once a pass short-circuits.
type Condition func() bool

// All returns a Condition that is true when every operand is true. Operands
// are evaluated left to right and evaluation stops at the first false one.
// All with no operands is vacuously true.
func All(conds ...Condition) Condition {
	return func() bool {
		for _, c := range conds {
			if !c() {
				return false
			}
		}
		return true
	}
}

// Any returns a Condition that is true when at least one operand is true.
// Operands are evaluated left to right and evaluation stops at the first
// true one. Any with no operands is vacuously false.
func Any(conds ...Condition) Condition {
	return func() bool {
		for _, c := range conds {
			if c() {
				return true
			}
		}
		return false
	}
}

// Not returns a Condition that is true when the operand is false.
func Not(cond Condition) Condition {
	return func() bool {
		return !cond()
	}
}
