package mines

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrGameOver         = errors.New("game over")
	ErrMalformedFixture = errors.New("malformed fixture")
	ErrUnknownSampler   = errors.New("unknown sampler")
)
