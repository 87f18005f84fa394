package validator

// Validator runs a chain of checks. Once a check fails the rest are skipped
// and Err holds the first failure.
type Validator struct {
	Valid bool
	Err   error
}

func New() *Validator {
	return &Validator{
		Valid: true,
	}
}

// Fail marks the chain invalid with err. Only the first failure is kept.
func (v *Validator) Fail(err error) bool {
	if v.Valid {
		v.Valid = false
		v.Err = err
	}
	return v.Valid
}
