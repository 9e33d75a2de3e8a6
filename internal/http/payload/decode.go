package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds a request body. A signed extrinsic or EVM transaction is
// far below it.
const maxBodyBytes = 1 << 20

var ErrTrailingData = errors.New("unexpected data after json object")

func DecodePayload(r *http.Request, object any) (err error) {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	defer func() {
		errClose := r.Body.Close()
		if err == nil {
			err = errClose
		}
	}()

	decoder.DisallowUnknownFields()

	if err = decoder.Decode(object); err != nil {
		return fmt.Errorf("decoding json payload: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("decoding json payload: %w", ErrTrailingData)
	}

	return nil
}
