// Package errors provides structured error handling for the progression engine.
//
// Errors carry a code, a message, optional metadata, and an optional wrapped
// cause. Typical usage:
//
//	err := errors.NotFound("continuity record not found")
//	err := errors.InvalidArgumentf("xp amount must be >= 0, got %d", amount)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load ledger")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) {
//	    // substitute the zero-value store
//	}
//
// Constructor configs validate with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Repo == nil {
//	    vb.RequiredField("Repo")
//	}
//	return vb.Build()
package errors
