package ghcbmsr

import "fmt"

// Info is the GHCBInfo section: the 12-bit protocol code identifying
// the operation an MSR value carries.
type Info uint16

// Protocol codes. Request and response codes are disjoint; each request
// kind is paired with exactly one response code.
const (
	// InfoGHCBGPA marks the non-exchange form of the register: with the
	// low 12 bits zero the MSR simply holds the page-aligned GPA of the
	// GHCB. Listed for completeness, not a request kind.
	InfoGHCBGPA Info = 0x000

	InfoSEVInfoResp        Info = 0x001
	InfoSEVInfoReq         Info = 0x002
	InfoCPUIDReq           Info = 0x004
	InfoCPUIDResp          Info = 0x005
	InfoAPResetHoldReq     Info = 0x006
	InfoAPResetHoldResp    Info = 0x007
	InfoPrefGHCBGPAReq     Info = 0x010
	InfoPrefGHCBGPAResp    Info = 0x011
	InfoRegisterGHCBReq    Info = 0x012
	InfoRegisterGHCBResp   Info = 0x013
	InfoPageStateReq       Info = 0x014
	InfoPageStateResp      Info = 0x015
	InfoRunVMPLReq         Info = 0x016
	InfoRunVMPLResp        Info = 0x017
	InfoFeatureSupportReq  Info = 0x080
	InfoFeatureSupportResp Info = 0x081
	InfoTerminationReq     Info = 0x100
)

func (i Info) String() string {
	switch i {
	case InfoGHCBGPA:
		return "ghcb_gpa"
	case InfoSEVInfoResp:
		return "sev_info_resp"
	case InfoSEVInfoReq:
		return "sev_info_req"
	case InfoCPUIDReq:
		return "cpuid_req"
	case InfoCPUIDResp:
		return "cpuid_resp"
	case InfoAPResetHoldReq:
		return "ap_reset_hold_req"
	case InfoAPResetHoldResp:
		return "ap_reset_hold_resp"
	case InfoPrefGHCBGPAReq:
		return "preferred_ghcb_gpa_req"
	case InfoPrefGHCBGPAResp:
		return "preferred_ghcb_gpa_resp"
	case InfoRegisterGHCBReq:
		return "register_ghcb_gpa_req"
	case InfoRegisterGHCBResp:
		return "register_ghcb_gpa_resp"
	case InfoPageStateReq:
		return "page_state_change_req"
	case InfoPageStateResp:
		return "page_state_change_resp"
	case InfoRunVMPLReq:
		return "run_vmpl_req"
	case InfoRunVMPLResp:
		return "run_vmpl_resp"
	case InfoFeatureSupportReq:
		return "feature_support_req"
	case InfoFeatureSupportResp:
		return "feature_support_resp"
	case InfoTerminationReq:
		return "termination_req"
	}
	return fmt.Sprintf("info(%#05x)", uint16(i))
}
