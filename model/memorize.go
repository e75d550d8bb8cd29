package model

import (
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
)

/*
Memorize writes xz compressed model parameters into the output
*/
func Memorize(out iokit.Output, m Memorizer) (err error) {
	wh, err := out.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	xw, err := xz.NewWriter(wh)
	if err != nil {
		return zorros.Trace(err)
	}
	if err = m.Memorize(xw); err != nil {
		return zorros.Wrapf(err, "failed to memorize model: %v", err.Error())
	}
	if err = xw.Close(); err != nil {
		return zorros.Trace(err)
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return
}

/*
Recall opens memorized parameters written by Memorize and passes the decompressed stream to f
*/
func Recall(in iokit.Input, f func(io.Reader) error) error {
	rd, err := in.Open()
	if err != nil {
		return zorros.Trace(err)
	}
	defer rd.Close()
	xr, err := xz.NewReader(rd)
	if err != nil {
		return zorros.Wrapf(err, "not a memorized model: %v", err.Error())
	}
	return f(xr)
}
