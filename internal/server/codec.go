package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackContentType selects the msgpack codec for request or response bodies.
const MsgpackContentType = "application/msgpack"

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 20

func isMsgpack(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return mt == MsgpackContentType || mt == "application/x-msgpack"
}

// wantsMsgpack reports whether the response should be msgpack: either the
// client asks for it in Accept, or it sent msgpack and expressed no preference.
func wantsMsgpack(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	for _, part := range strings.Split(accept, ",") {
		if isMsgpack(strings.TrimSpace(part)) {
			return true
		}
	}
	if accept == "" || accept == "*/*" {
		return isMsgpack(r.Header.Get("Content-Type"))
	}
	return false
}

// decodeRequest reads the body into v with the codec named by Content-Type.
// Msgpack uses the json struct tags, so both codecs share one set of types.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var err error
	if isMsgpack(r.Header.Get("Content-Type")) {
		dec := msgpack.NewDecoder(body)
		dec.SetCustomStructTag("json")
		err = dec.Decode(v)
	} else {
		err = json.NewDecoder(body).Decode(v)
	}
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("request body is empty")
		}
		return err
	}
	return nil
}

func encodeResponse(w http.ResponseWriter, r *http.Request, statusCode int, payload any) error {
	if r != nil && wantsMsgpack(r) {
		w.Header().Set("Content-Type", MsgpackContentType)
		w.WriteHeader(statusCode)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(payload)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(payload)
}
