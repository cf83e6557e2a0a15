package radius

// Rcode is a module result code. It signals to the request pipeline how a
// module (or map processor) disposed of the request. The pipeline interprets
// rcodes; producers only return them.
type Rcode int

const (
	// RcodeOK means the module succeeded without modifying the request.
	RcodeOK Rcode = iota
	// RcodeFail means the module failed. Also used when template expansion
	// fails before a processor could run.
	RcodeFail
	// RcodeReject means the request should be rejected immediately.
	RcodeReject
	// RcodeHandled means the module has fully handled the request and no
	// further processing is required.
	RcodeHandled
	// RcodeInvalid means the request contained invalid or malformed data.
	RcodeInvalid
	// RcodeNotfound means the module looked for data and found none.
	RcodeNotfound
	// RcodeNoop means the module did nothing.
	RcodeNoop
	// RcodeUpdated means the module succeeded and updated the request.
	RcodeUpdated
)

var rcodeNames = map[Rcode]string{
	RcodeOK:       "ok",
	RcodeFail:     "fail",
	RcodeReject:   "reject",
	RcodeHandled:  "handled",
	RcodeInvalid:  "invalid",
	RcodeNotfound: "notfound",
	RcodeNoop:     "noop",
	RcodeUpdated:  "updated",
}

// String returns the lowercase name used in configuration and logs.
func (r Rcode) String() string {
	if name, ok := rcodeNames[r]; ok {
		return name
	}
	return "unknown"
}
