package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/ledger"
	"github.com/vocdoni/grantz/oracle"
	"github.com/vocdoni/grantz/storage"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"
)

func TestMain(m *testing.M) {
	log.Init("error", "stdout", nil)
	os.Exit(m.Run())
}

var (
	ownerAddr     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	submitterAddr = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	strangerAddr  = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

type testAPI struct {
	srv    *httptest.Server
	engine *fhe.MockEngine
	bridge *oracle.MockBridge
	ledger *ledger.Ledger
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	engine := fhe.NewMockEngine()
	bridge := oracle.NewMockBridge(engine)
	l, err := ledger.New(&ledger.Config{
		Owner:    ownerAddr,
		Cooldown: time.Millisecond,
		Storage:  storage.New(metadb.NewTest(t)),
		Engine:   engine,
		Verifier: engine,
		Bridge:   bridge,
	})
	qt.Assert(t, err, qt.IsNil)

	a := &API{ledger: l}
	a.initRouter()
	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return &testAPI{srv: srv, engine: engine, bridge: bridge, ledger: l}
}

// do performs a request against the test server. An empty actor leaves the
// actor header unset; a nil body sends no payload.
func (ta *testAPI) do(t *testing.T, method, path string, actor common.Address, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		qt.Assert(t, err, qt.IsNil)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ta.srv.URL+path, reader)
	qt.Assert(t, err, qt.IsNil)
	if actor != (common.Address{}) {
		req.Header.Set(ActorHeader, actor.Hex())
	}
	resp, err := http.DefaultClient.Do(req)
	qt.Assert(t, err, qt.IsNil)
	defer func() {
		qt.Assert(t, resp.Body.Close(), qt.IsNil)
	}()
	data, err := io.ReadAll(resp.Body)
	qt.Assert(t, err, qt.IsNil)
	return resp.StatusCode, data
}

// errCode extracts the error code of an API error response body.
func errCode(t *testing.T, data []byte) int {
	t.Helper()
	var e struct {
		Code int `json:"code"`
	}
	qt.Assert(t, json.Unmarshal(data, &e), qt.IsNil)
	return e.Code
}

func TestPing(t *testing.T) {
	c := qt.New(t)
	ta := newTestAPI(t)
	status, _ := ta.do(t, http.MethodGet, PingEndpoint, common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
}

func TestLedgerInfoEndpoint(t *testing.T) {
	c := qt.New(t)
	ta := newTestAPI(t)

	status, data := ta.do(t, http.MethodGet, LedgerEndpoint, common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	info := &LedgerInfo{}
	c.Assert(json.Unmarshal(data, info), qt.IsNil)
	c.Assert(info.Owner, qt.Equals, ownerAddr)
	c.Assert(info.Paused, qt.IsFalse)
}

func TestAdminEndpoints(t *testing.T) {
	c := qt.New(t)
	ta := newTestAPI(t)

	// missing actor header
	status, data := ta.do(t, http.MethodPost, PauseEndpoint, common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusUnauthorized)
	c.Assert(errCode(t, data), qt.Equals, ErrMissingActorAddress.Code)

	// non-owner
	status, data = ta.do(t, http.MethodPost, PauseEndpoint, strangerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusForbidden)
	c.Assert(errCode(t, data), qt.Equals, ErrNotOwner.Code)

	// pause and unpause
	status, _ = ta.do(t, http.MethodPost, PauseEndpoint, ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	paused, err := ta.ledger.Paused()
	c.Assert(err, qt.IsNil)
	c.Assert(paused, qt.IsTrue)
	status, _ = ta.do(t, http.MethodPost, UnpauseEndpoint, ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	// allowlist management
	status, _ = ta.do(t, http.MethodPost, SubmittersEndpoint, ownerAddr,
		&SubmitterRequest{Address: submitterAddr})
	c.Assert(status, qt.Equals, http.StatusOK)
	ok, err := ta.ledger.IsSubmitter(submitterAddr)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)

	status, data = ta.do(t, http.MethodDelete, "/admin/submitters/not-an-address", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusBadRequest)
	c.Assert(errCode(t, data), qt.Equals, ErrMalformedAddress.Code)

	status, _ = ta.do(t, http.MethodDelete,
		fmt.Sprintf("/admin/submitters/%s", submitterAddr.Hex()), ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	// cooldown update
	status, _ = ta.do(t, http.MethodPost, CooldownEndpoint, ownerAddr,
		&CooldownRequest{Seconds: 90})
	c.Assert(status, qt.Equals, http.StatusOK)
	cooldown, err := ta.ledger.Cooldown()
	c.Assert(err, qt.IsNil)
	c.Assert(cooldown, qt.Equals, 90*time.Second)

	// ownership transfer
	status, _ = ta.do(t, http.MethodPost, TransferEndpoint, ownerAddr,
		&TransferRequest{NewOwner: strangerAddr})
	c.Assert(status, qt.Equals, http.StatusOK)
	status, data = ta.do(t, http.MethodPost, PauseEndpoint, ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusForbidden)
	c.Assert(errCode(t, data), qt.Equals, ErrNotOwner.Code)
}

func TestBatchEndpoints(t *testing.T) {
	c := qt.New(t)
	ta := newTestAPI(t)

	status, data := ta.do(t, http.MethodGet, "/batches/notanumber", common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusBadRequest)
	c.Assert(errCode(t, data), qt.Equals, ErrMalformedBatchID.Code)

	status, data = ta.do(t, http.MethodGet, "/batches/1", common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusNotFound)
	c.Assert(errCode(t, data), qt.Equals, ErrBatchNotFound.Code)

	status, _ = ta.do(t, http.MethodPost, "/batches/1/open", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	status, data = ta.do(t, http.MethodPost, "/batches/1/open", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusConflict)
	c.Assert(errCode(t, data), qt.Equals, ErrBatchAlreadyOpen.Code)

	status, data = ta.do(t, http.MethodGet, "/batches/1", common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	info := &BatchInfo{}
	c.Assert(json.Unmarshal(data, info), qt.IsNil)
	c.Assert(info.ID, qt.Equals, uint64(1))
	c.Assert(info.Status, qt.Equals, "open")
	c.Assert(info.Application, qt.IsNil)

	status, data = ta.do(t, http.MethodGet, BatchesEndpoint, common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	list := &BatchList{}
	c.Assert(json.Unmarshal(data, list), qt.IsNil)
	c.Assert(list.Batches, qt.DeepEquals, []uint64{1})

	status, _ = ta.do(t, http.MethodPost, "/batches/1/close", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	status, data = ta.do(t, http.MethodPost, "/batches/1/close", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusConflict)
	c.Assert(errCode(t, data), qt.Equals, ErrBatchNotOpen.Code)
}

func TestDisclosureFlow(t *testing.T) {
	c := qt.New(t)
	ta := newTestAPI(t)

	status, _ := ta.do(t, http.MethodPost, SubmittersEndpoint, ownerAddr,
		&SubmitterRequest{Address: submitterAddr})
	c.Assert(status, qt.Equals, http.StatusOK)
	status, _ = ta.do(t, http.MethodPost, "/batches/1/open", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	// a stranger may not submit
	submission := &SubmitRequest{
		EncryptedAmount: ta.engine.Encrypt(big.NewInt(100)),
		EncryptedScore:  ta.engine.Encrypt(big.NewInt(4)),
	}
	status, data := ta.do(t, http.MethodPost, "/batches/1/applications", strangerAddr, submission)
	c.Assert(status, qt.Equals, http.StatusForbidden)
	c.Assert(errCode(t, data), qt.Equals, ErrNotSubmitter.Code)

	status, _ = ta.do(t, http.MethodPost, "/batches/1/applications", submitterAddr, submission)
	c.Assert(status, qt.Equals, http.StatusOK)

	// the batch view exposes the handles but no plaintext
	status, data = ta.do(t, http.MethodGet, "/batches/1", common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	info := &BatchInfo{}
	c.Assert(json.Unmarshal(data, info), qt.IsNil)
	c.Assert(info.Application, qt.IsNotNil)
	c.Assert(info.Application.Submitter, qt.Equals, submitterAddr)
	c.Assert(info.Application.EncryptedGrantAmount.IsInitialized(), qt.IsFalse)

	status, _ = ta.do(t, http.MethodPost, "/batches/1/derive", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	time.Sleep(5 * time.Millisecond)
	status, data = ta.do(t, http.MethodPost, "/batches/1/disclosures", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	reqResp := &DisclosureRequestResponse{}
	c.Assert(json.Unmarshal(data, reqResp), qt.IsNil)
	c.Assert(reqResp.RequestID, qt.Not(qt.HasLen), 0)

	// pending disclosure state
	status, data = ta.do(t, http.MethodGet, "/disclosures/"+reqResp.RequestID.String(), common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	dinfo := &DisclosureInfo{}
	c.Assert(json.Unmarshal(data, dinfo), qt.IsNil)
	c.Assert(dinfo.Processed, qt.IsFalse)
	c.Assert(dinfo.DisclosedAmount, qt.IsNil)

	// unknown request id
	status, data = ta.do(t, http.MethodGet, "/disclosures/deadbeef", common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusNotFound)
	c.Assert(errCode(t, data), qt.Equals, ErrUnknownRequest.Code)

	// the oracle posts its answer through the callback endpoint
	answers := ta.bridge.Pending()
	c.Assert(answers, qt.HasLen, 1)
	callback := &CallbackRequest{
		RequestID: answers[0].RequestID,
		Cleartext: answers[0].Cleartext,
		Proof:     answers[0].Proof,
	}
	status, _ = ta.do(t, http.MethodPost, CallbackEndpoint, common.Address{}, callback)
	c.Assert(status, qt.Equals, http.StatusOK)

	// the disclosure is finalized with the product of amount and score
	status, data = ta.do(t, http.MethodGet, "/disclosures/"+reqResp.RequestID.String(), common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	dinfo = &DisclosureInfo{}
	c.Assert(json.Unmarshal(data, dinfo), qt.IsNil)
	c.Assert(dinfo.Processed, qt.IsTrue)
	c.Assert(dinfo.DisclosedAmount, qt.IsNotNil)
	c.Assert(dinfo.DisclosedAmount.MathBigInt().Int64(), qt.Equals, int64(400))

	// a replayed callback is rejected
	status, data = ta.do(t, http.MethodPost, CallbackEndpoint, common.Address{}, callback)
	c.Assert(status, qt.Equals, http.StatusConflict)
	c.Assert(errCode(t, data), qt.Equals, ErrReplayAttempt.Code)

	// the audit trail records the full history
	status, data = ta.do(t, http.MethodGet, AuditEndpoint, common.Address{}, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	var records []*storage.AuditRecord
	c.Assert(json.Unmarshal(data, &records), qt.IsNil)
	c.Assert(len(records) >= 6, qt.IsTrue)
}

func TestAbandonEndpoint(t *testing.T) {
	c := qt.New(t)
	ta := newTestAPI(t)

	status, _ := ta.do(t, http.MethodPost, SubmittersEndpoint, ownerAddr,
		&SubmitterRequest{Address: submitterAddr})
	c.Assert(status, qt.Equals, http.StatusOK)
	status, _ = ta.do(t, http.MethodPost, "/batches/1/open", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	status, _ = ta.do(t, http.MethodPost, "/batches/1/applications", submitterAddr, &SubmitRequest{
		EncryptedAmount: ta.engine.Encrypt(big.NewInt(10)),
		EncryptedScore:  ta.engine.Encrypt(big.NewInt(3)),
	})
	c.Assert(status, qt.Equals, http.StatusOK)
	status, _ = ta.do(t, http.MethodPost, "/batches/1/derive", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	time.Sleep(5 * time.Millisecond)
	status, data := ta.do(t, http.MethodPost, "/batches/1/disclosures", ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)
	reqResp := &DisclosureRequestResponse{}
	c.Assert(json.Unmarshal(data, reqResp), qt.IsNil)

	path := "/disclosures/" + reqResp.RequestID.String() + "/abandon"
	status, data = ta.do(t, http.MethodPost, path, strangerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusForbidden)
	c.Assert(errCode(t, data), qt.Equals, ErrNotOwner.Code)

	status, _ = ta.do(t, http.MethodPost, path, ownerAddr, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	// the late oracle answer is now a replay
	answers := ta.bridge.Pending()
	c.Assert(answers, qt.HasLen, 1)
	status, data = ta.do(t, http.MethodPost, CallbackEndpoint, common.Address{}, &CallbackRequest{
		RequestID: answers[0].RequestID,
		Cleartext: answers[0].Cleartext,
		Proof:     answers[0].Proof,
	})
	c.Assert(status, qt.Equals, http.StatusConflict)
	c.Assert(errCode(t, data), qt.Equals, ErrReplayAttempt.Code)
}
