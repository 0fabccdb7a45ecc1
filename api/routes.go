package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// LedgerEndpoint returns the public ledger configuration (owner,
	// pause flag, cooldown).
	LedgerEndpoint = "/ledger"
	// BatchesEndpoint lists the batches ever opened.
	BatchesEndpoint = "/batches"
	// BatchURLParam names the batch id URL parameter.
	BatchURLParam = "batchId"
	// BatchEndpoint returns one batch with its application handles.
	BatchEndpoint = "/batches/{" + BatchURLParam + "}"
	// BatchOpenEndpoint and BatchCloseEndpoint drive the batch lifecycle.
	BatchOpenEndpoint  = "/batches/{" + BatchURLParam + "}/open"
	BatchCloseEndpoint = "/batches/{" + BatchURLParam + "}/close"
	// ApplicationsEndpoint receives grant application submissions.
	ApplicationsEndpoint = "/batches/{" + BatchURLParam + "}/applications"
	// DeriveEndpoint computes the encrypted grant amount of a batch.
	DeriveEndpoint = "/batches/{" + BatchURLParam + "}/derive"
	// DisclosuresEndpoint issues a disclosure request for a batch.
	DisclosuresEndpoint = "/batches/{" + BatchURLParam + "}/disclosures"
	// RequestURLParam names the disclosure request id URL parameter.
	RequestURLParam = "requestId"
	// DisclosureEndpoint returns the state of one disclosure request.
	DisclosureEndpoint = "/disclosures/{" + RequestURLParam + "}"
	// DisclosureAbandonEndpoint abandons an outstanding request.
	DisclosureAbandonEndpoint = "/disclosures/{" + RequestURLParam + "}/abandon"
	// CallbackEndpoint is invoked by the oracle bridge with an answer. It
	// is not meant for end users; the ledger defends against forged or
	// replayed invocations.
	CallbackEndpoint = "/disclosures/callback"
	// AuditEndpoint returns the append-only audit trail.
	AuditEndpoint = "/audit"
	// Administrative endpoints, owner only.
	TransferEndpoint        = "/admin/transfer"
	SubmittersEndpoint      = "/admin/submitters"
	SubmitterURLParam       = "address"
	SubmitterEndpoint       = "/admin/submitters/{" + SubmitterURLParam + "}"
	PauseEndpoint           = "/admin/pause"
	UnpauseEndpoint         = "/admin/unpause"
	CooldownEndpoint        = "/admin/cooldown"
)

// ActorHeader carries the actor address of a mutating call. Authentication
// of the address is a transport concern outside the ledger core.
const ActorHeader = "X-Actor-Address"
