package parameterservice

const mb = 1024 * 1024

// Profile names, as shown in diagnostics and accepted by resolver.profile.
const (
	ProfileIPhone11_8_16C50 = "offsets__iphone11_8__16C50"
	ProfileIPhone10_1_16B92 = "offsets__iphone10_1__16B92"
)

// Profile is a named device-specific offsets action.
type Profile struct {
	Name   string
	Action Action
}

// FamilyRule selects Profile when the device string contains any of Markers.
type FamilyRule struct {
	Markers []string
	Profile Profile
}

// DefaultMinOffsets is the coverage threshold: the device record plus the
// computed-offsets record.
const DefaultMinOffsets = 2

// Profiles lists every known offsets profile.
func Profiles() []Profile {
	return []Profile{
		{Name: ProfileIPhone10_1_16B92, Action: offsetsIPhone10_1_16B92},
		{Name: ProfileIPhone11_8_16C50, Action: offsetsIPhone11_8_16C50},
	}
}

// DefaultProfile is used when no family rule matches the device.
func DefaultProfile() Profile {
	return Profile{Name: ProfileIPhone10_1_16B92, Action: offsetsIPhone10_1_16B92}
}

// DefaultFamilyRules returns the built-in family rules.
func DefaultFamilyRules() []FamilyRule {
	return []FamilyRule{
		{
			Markers: []string{"iPhone11,"},
			Profile: Profile{Name: ProfileIPhone11_8_16C50, Action: offsetsIPhone11_8_16C50},
		},
	}
}

// SystemRecords returns the model-independent parameter initializations.
func SystemRecords() Registry {
	return Registry{
		{Name: "system_parameters", Device: Wildcard, Build: Wildcard, Action: systemParameters},
	}
}

// OffsetRecords returns the offsets registry. The first record is a
// placeholder the resolver replaces with the selected device record.
func OffsetRecords() Registry {
	return Registry{
		{Name: "placeholder", Device: "", Build: "", Action: nil},
		{Name: "computed_offsets", Device: Wildcard, Build: Wildcard, Action: ComputeDerivedOffsets},
	}
}

func systemParameters(s *Store) {
	s.SetAddress("kernel_base", 0xFFFFFFF007004000)
	s.SetConstant("kernel_slide_step", 0x200000)
	s.SetConstant("message_size_for_kmsg_zone", 76)
	s.SetConstant("kmsg_zone_size", 256)
	s.SetConstant("max_ool_ports_per_message", 16382)
	s.SetConstant("gc_step", 2*mb)
}

// offsetsIPhone11_8_16C50 covers iPhone11,8 on 16C50 and similar devices.
func offsetsIPhone11_8_16C50(s *Store) {
	s.SetSize("ipc_entry", 0x18)
	s.SetOffset("ipc_entry", "ie_object", 0)
	s.SetOffset("ipc_entry", "ie_bits", 8)
	s.SetOffset("ipc_entry", "ie_request", 16)

	s.SetSize("ipc_port", 0xa8)
	s.SetBlockSize("ipc_port", 0x4000)
	s.SetOffset("ipc_port", "ip_bits", 0)
	s.SetOffset("ipc_port", "ip_references", 4)
	s.SetOffset("ipc_port", "waitq_flags", 24)
	s.SetOffset("ipc_port", "imq_messages", 64)
	s.SetOffset("ipc_port", "imq_msgcount", 80)
	s.SetOffset("ipc_port", "imq_qlimit", 82)
	s.SetOffset("ipc_port", "ip_receiver", 96)
	s.SetOffset("ipc_port", "ip_kobject", 104)
	s.SetOffset("ipc_port", "ip_nsrequest", 112)
	s.SetOffset("ipc_port", "ip_requests", 128)
	s.SetOffset("ipc_port", "ip_mscount", 156)
	s.SetOffset("ipc_port", "ip_srights", 160)

	s.SetSize("ipc_port_request", 0x10)
	s.SetOffset("ipc_port_request", "ipr_soright", 0)

	s.SetOffset("ipc_space", "is_table_size", 0x14)
	s.SetOffset("ipc_space", "is_table", 0x20)

	s.SetSize("ipc_voucher", 0x50)
	s.SetBlockSize("ipc_voucher", 0x4000)

	s.SetOffset("proc", "p_pid", 0x60)
	s.SetOffset("proc", "p_ucred", 0xf8)

	s.SetSize("sysctl_oid", 0x50)
	s.SetOffset("sysctl_oid", "oid_parent", 0x0)
	s.SetOffset("sysctl_oid", "oid_link", 0x8)
	s.SetOffset("sysctl_oid", "oid_kind", 0x14)
	s.SetOffset("sysctl_oid", "oid_handler", 0x30)
	s.SetOffset("sysctl_oid", "oid_version", 0x48)
	s.SetOffset("sysctl_oid", "oid_refcnt", 0x4c)

	s.SetOffset("task", "lck_mtx_type", 0xb)
	s.SetOffset("task", "ref_count", 0x10)
	s.SetOffset("task", "active", 0x14)
	s.SetOffset("task", "map", 0x20)
	s.SetOffset("task", "itk_space", 0x300)
	s.SetOffset("task", "bsd_info", 0x368)
}

// offsetsIPhone10_1_16B92 covers iPhone10,1 on 16B92 and similar devices.
func offsetsIPhone10_1_16B92(s *Store) {
	offsetsIPhone11_8_16C50(s)

	s.SetOffset("task", "bsd_info", 0x358)
}

// blockStructures are the structures that get a computed per-block count.
var blockStructures = []string{"ipc_port", "ipc_voucher"}

// ComputeDerivedOffsets fills in parameters computed from raw ones. It must
// run after the device record has set every block size and element size.
func ComputeDerivedOffsets(s *Store) {
	for _, name := range blockStructures {
		s.SetCountPerBlock(name, s.BlockSize(name)/s.Size(name))
	}
}
