package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"go.vocdoni.io/dvote/log"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	n, err := w.Write(jdata)
	if err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
	log.Debugw("api response", "bytes", n, "data", strings.ReplaceAll(string(jdata), "\"", ""))
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// actorAddress extracts and validates the actor address header of a
// mutating request. The boolean result is false if an error response has
// already been written.
func actorAddress(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := r.Header.Get(ActorHeader)
	if raw == "" {
		ErrMissingActorAddress.Write(w)
		return common.Address{}, false
	}
	if !common.IsHexAddress(raw) {
		ErrMalformedAddress.Withf("%q", raw).Write(w)
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// batchID extracts and parses the batch id URL parameter.
func batchID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, BatchURLParam)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ErrMalformedBatchID.Withf("%q", raw).Write(w)
		return 0, false
	}
	return id, true
}
