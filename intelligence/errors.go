package intelligence

import "errors"

// ErrInsufficientData is returned when the supplied sales history is too
// small to analyze. It is fatal to the analysis call and should surface
// to API consumers as a 4xx condition.
var ErrInsufficientData = errors.New("insufficient data: sales history must contain at least one observation")
