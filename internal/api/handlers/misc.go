package handlers

import (
	"net/http"

	"github.com/dom/petshop-api/internal/api/response"
)

type bacsPayload struct {
	Vol      string   `json:"vol"`
	Hdr1     string   `json:"hdr1"`
	Hdr2     string   `json:"hdr2"`
	Uhl      string   `json:"uhl"`
	Standard []string `json:"standard"`
	Eof1     string   `json:"eof1"`
	Eof2     string   `json:"eof2"`
	Utl      string   `json:"utl"`
}

var sampleBacs = bacsPayload{
	Vol:  "VOL1Mk2OPn0                              BACSNO                                1",
	Hdr1: "HDR1ABACSNOS   BACSNOMk2OPn00010001100010 22087 2308900000003LUNL7m9p1lfZ       ",
	Hdr2: "HDR2F0200000106                                   00                            ",
	Uhl:  "UHL1 22087999999    000000004 MULTI  721       AUD5020                          ",
	Standard: []string{
		"1234561234567800N12345612345678/RO100000010000Test              123&abc           TestTestTestTestTe 22087",
	},
	Eof1: "EOF1ABACSNOS   BACSNOMk2OPn00010001100010 22087 230890UEg9lb3LUNL7m9p1lfZ       ",
	Eof2: "EOF2F0200000106                                   00                            ",
	Utl:  "UTL10000000000000000000000000000000000000000        0000001                     ",
}

// Bacs returns a fixed sample BACS submission. The body is not wrapped in
// the usual envelope.
func Bacs(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{"data": sampleBacs})
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
