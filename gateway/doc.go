// Package gateway is the single HTTP transport shared by the e-invoice
// provider clients.
//
// A Gateway owns one configured transport (base URL, bearer token,
// timeout) and exposes one operation per verb/shape combination. Every
// success response is normalized into a Response with exactly one of three
// variants (empty, JSON, text). Every failure, whether no response arrived
// or the provider answered with an error status, is reported as *Error
// with a ready-to-display message that already includes the provider's
// error details.
//
// The two supported providers disagree on key casing ("message" vs
// "Message", "errors" vs "Errors", ...). Both spellings are always
// accepted; lookups try the lowercase key first.
//
// # Basic Usage
//
//	gw, err := gateway.New(gateway.Config{
//	    BaseURL: "https://apitest.nes.com.tr",
//	    Token:   "my-token",
//	})
//
//	resp, err := gw.Get(ctx, "/general/v1/management/creditsummary", nil, nil)
//	if err != nil {
//	    var gerr *gateway.Error
//	    if errors.As(err, &gerr) {
//	        fmt.Println(gerr.FormattedMessage())
//	    }
//	}
//
// # Binary Downloads
//
//	pdf, err := gw.DownloadBinary(ctx, "/evoucher/Vouchers/"+id+"/pdf", nil, nil)
//
// DownloadBinary transparently unwraps base64 payloads that some providers
// return inside a JSON envelope.
package gateway
