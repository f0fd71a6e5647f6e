package flat2d

import "errors"

var (
	// ErrBufferAlloc is returned when the device cannot allocate an instance
	// buffer. The frame's remaining draw calls are abandoned.
	ErrBufferAlloc = errors.New("flat2d: instance buffer allocation failed")

	// ErrInvalidSheet is returned by sprite sheet loaders for definitions
	// that do not describe a usable sheet.
	ErrInvalidSheet = errors.New("flat2d: invalid sprite sheet")
)
