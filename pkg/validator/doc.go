// Package validator builds field checks out of small Rule values and
// collects every failure into one ValidationErrors value.
//
//	err := validator.Apply(
//	    validator.RequiredString("author_name", name),
//	    validator.MaxLenString("author_name", name, 100),
//	    validator.ValidEmail("author_email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs.Has("author_email") {
//	    // ...
//	}
//
// ValidationErrors survives errors.Join and fmt.Errorf("%w"), so services
// can tag it with their own sentinel and the HTTP layer can still report
// the individual fields.
package validator
