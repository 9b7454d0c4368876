package rv32

import (
	"fmt"
	"strings"
)

// CSR is a 12-bit control/status register address. All 4096 addresses are
// syntactically legal; whether a given address is architecturally defined
// is a concern for the layer above the codec.
type CSR uint16

// MaxCSR is the largest CSR address.
const MaxCSR = 0xFFF

// Standard unprivileged and machine-level CSR addresses.
const (
	// Unprivileged floating-point CSRs.
	CSRFflags CSR = 0x001
	CSRFrm    CSR = 0x002
	CSRFcsr   CSR = 0x003

	// Unprivileged counters/timers.
	CSRCycle    CSR = 0xC00
	CSRTime     CSR = 0xC01
	CSRInstret  CSR = 0xC02
	CSRCycleH   CSR = 0xC80
	CSRTimeH    CSR = 0xC81
	CSRInstretH CSR = 0xC82

	// Machine information registers.
	CSRMvendorid CSR = 0xF11
	CSRMarchid   CSR = 0xF12
	CSRMimpid    CSR = 0xF13
	CSRMhartid   CSR = 0xF14

	// Machine trap setup and handling.
	CSRMstatus  CSR = 0x300
	CSRMisa     CSR = 0x301
	CSRMie      CSR = 0x304
	CSRMtvec    CSR = 0x305
	CSRMscratch CSR = 0x340
	CSRMepc     CSR = 0x341
	CSRMcause   CSR = 0x342
	CSRMtval    CSR = 0x343
	CSRMip      CSR = 0x344
)

// NewCSR validates addr and returns it as a CSR address.
func NewCSR(addr uint32) (CSR, error) {
	if addr > MaxCSR {
		return 0, fmt.Errorf("%w: %#x is not a 12-bit CSR address", ErrCSROutOfRange, addr)
	}
	return CSR(addr), nil
}

// Uint returns the CSR address.
func (c CSR) Uint() uint32 { return uint32(c) }

// String returns the address in hex ("0x300"). Well-known names are not
// substituted; tooling that wants symbolic names can keep its own table.
func (c CSR) String() string {
	return fmt.Sprintf("%#x", uint16(c))
}

var csrNames = map[string]CSR{
	"fflags": CSRFflags, "frm": CSRFrm, "fcsr": CSRFcsr,
	"cycle": CSRCycle, "time": CSRTime, "instret": CSRInstret,
	"cycleh": CSRCycleH, "timeh": CSRTimeH, "instreth": CSRInstretH,
	"mvendorid": CSRMvendorid, "marchid": CSRMarchid,
	"mimpid": CSRMimpid, "mhartid": CSRMhartid,
	"mstatus": CSRMstatus, "misa": CSRMisa, "mie": CSRMie,
	"mtvec": CSRMtvec, "mscratch": CSRMscratch, "mepc": CSRMepc,
	"mcause": CSRMcause, "mtval": CSRMtval, "mip": CSRMip,
}

// CSRFromString resolves a well-known CSR name ("mstatus") to its
// address, case-insensitively.
func CSRFromString(s string) (CSR, bool) {
	c, ok := csrNames[strings.ToLower(s)]
	return c, ok
}
