package result

// Status and chaining mutators redeclared from Of so that they guard a
// nil grid and keep returning *Grid[T].

// WithStatus sets Succeeded and StatusCode together.
func (g *Grid[T]) WithStatus(succeeded bool, code StatusCode) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithStatus(succeeded, code)
	return g
}

// Successful marks the grid succeeded with StatusOK and Found.
func (g *Grid[T]) Successful() *Grid[T] {
	g.mustNotBeNil()
	g.Result.Successful()
	return g
}

// SuccessfulMessage is Successful followed by WithMessage.
func (g *Grid[T]) SuccessfulMessage(message string) *Grid[T] {
	return g.Successful().WithMessage(message)
}

// SuccessfulData is Successful followed by WithData.
func (g *Grid[T]) SuccessfulData(items []T) *Grid[T] {
	return g.Successful().WithData(items)
}

// Warning marks a non-blocking issue: Succeeded with StatusNoContent.
func (g *Grid[T]) Warning(message string) *Grid[T] {
	return g.WithStatus(true, StatusNoContent).WithMessage(message)
}

// WarningData is Warning followed by WithData.
func (g *Grid[T]) WarningData(items []T, message string) *Grid[T] {
	return g.Warning(message).WithData(items)
}

// Failed marks the grid failed with StatusBadRequest.
func (g *Grid[T]) Failed() *Grid[T] {
	return g.WithStatus(false, StatusBadRequest)
}

// FailedMessage is Failed followed by WithMessage.
func (g *Grid[T]) FailedMessage(message string) *Grid[T] {
	return g.Failed().WithMessage(message)
}

// FailedContinue is FailedMessage followed by WithCanContinue.
func (g *Grid[T]) FailedContinue(message string, canContinue bool) *Grid[T] {
	return g.FailedMessage(message).WithCanContinue(canContinue)
}

// FailedWithData is FailedMessage followed by WithData.
func (g *Grid[T]) FailedWithData(message string, items []T) *Grid[T] {
	return g.FailedMessage(message).WithData(items)
}

// FailedWithException is FailedMessage plus the caught error.
func (g *Grid[T]) FailedWithException(message string, err error) *Grid[T] {
	return g.FailedMessage(message).WithException(err)
}

// NotFound marks the grid failed with StatusNotFound.
func (g *Grid[T]) NotFound(message string) *Grid[T] {
	return g.WithStatus(false, StatusNotFound).WithMessage(message)
}

// InternalServerError marks the grid failed with
// StatusInternalServerError.
func (g *Grid[T]) InternalServerError() *Grid[T] {
	return g.WithStatus(false, StatusInternalServerError)
}

// Unauthorized marks the grid failed with StatusUnauthorized.
func (g *Grid[T]) Unauthorized() *Grid[T] {
	return g.WithStatus(false, StatusUnauthorized)
}

// HandleServiceError records a failure caught from a dependency and
// drops the rows, so RowCount becomes 0.
func (g *Grid[T]) HandleServiceError(message string, err error) *Grid[T] {
	return g.FailedWithException(message, err).WithData(nil)
}

// WithData is WithItems.
func (g *Grid[T]) WithData(items []T) *Grid[T] {
	return g.WithItems(items)
}

// WithMessage sets Message.
func (g *Grid[T]) WithMessage(message string) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithMessage(message)
	return g
}

// WithError appends message as an error unless it is blank.
func (g *Grid[T]) WithError(message string) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithError(message)
	return g
}

// WithErrorCode appends an error with a code.
func (g *Grid[T]) WithErrorCode(message, code string) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithErrorCode(message, code)
	return g
}

// WithErrors appends errs in order.
func (g *Grid[T]) WithErrors(errs ...ResultError) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithErrors(errs...)
	return g
}

// WithException stores an error that was caught upstream.
func (g *Grid[T]) WithException(err error) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithException(err)
	return g
}

// WithCanContinue sets CanContinue.
func (g *Grid[T]) WithCanContinue(canContinue bool) *Grid[T] {
	g.mustNotBeNil()
	g.Result.WithCanContinue(canContinue)
	return g
}

// RegisterFound sets Found.
func (g *Grid[T]) RegisterFound() *Grid[T] {
	g.mustNotBeNil()
	g.Result.RegisterFound()
	return g
}

// RegisterNotFound clears Found.
func (g *Grid[T]) RegisterNotFound() *Grid[T] {
	g.mustNotBeNil()
	g.Result.RegisterNotFound()
	return g
}

// AddError appends an error.
func (g *Grid[T]) AddError(message string) {
	g.mustNotBeNil()
	g.Result.AddError(message)
}

// AddErrorCode appends an error with a code.
func (g *Grid[T]) AddErrorCode(message, code string) {
	g.mustNotBeNil()
	g.Result.AddErrorCode(message, code)
}

// AddErrors appends errs in order.
func (g *Grid[T]) AddErrors(errs ...ResultError) {
	g.mustNotBeNil()
	g.Result.AddErrors(errs...)
}

// AddMetadata stores value under key. Keys written by SyncMetadata are
// overwritten by the next counter mutator.
func (g *Grid[T]) AddMetadata(key string, value any) error {
	if g == nil {
		return nilEnvelope()
	}
	return g.Result.AddMetadata(key, value)
}

// MetadataValue implements [MetadataSource]; a nil g has no metadata.
func (g *Grid[T]) MetadataValue(key string) (MetaValue, bool) {
	if g == nil {
		return MetaValue{}, false
	}
	return g.Result.MetadataValue(key)
}

// GetMessageOrError is the Of form.
func (g *Grid[T]) GetMessageOrError() string {
	g.mustNotBeNil()
	return g.Of.GetMessageOrError()
}
