package streams

import (
	"io"
	"os"
)

type Output struct {
	Out io.Writer
	Err io.Writer
}

func (o *Output) Streams() Streams {
	return Streams{
		Output: *o,
	}
}

type Streams struct {
	Output
	In io.Reader
}

func Current() *Streams {
	return &Streams{
		Output: Output{
			Out: os.Stdout,
			Err: os.Stderr,
		},
		In: os.Stdin,
	}
}
