package definition

// DefaultName is the reserved name of the fallback template for a runner.
// It is also the id carried by the template itself.
const DefaultName = "default"

// Runner identifies the launch backend that owns an application.
type Runner string

const (
	RunnerLegendary Runner = "legendary"
	RunnerGOG       Runner = "gog"
	RunnerNile      Runner = "nile"
	RunnerSideload  Runner = "sideload"
)

// RegType is a Windows registry value type.
// Unknown values are carried through untouched; there is no schema check.
type RegType string

const (
	RegBinary            RegType = "REG_BINARY"
	RegDWORD             RegType = "REG_DWORD"
	RegQWORD             RegType = "REG_QWORD"
	RegDWORDLittleEndian RegType = "REG_DWORD_LITTLE_ENDIAN"
	RegQWORDLittleEndian RegType = "REG_QWORD_LITTLE_ENDIAN"
	RegDWORDBigEndian    RegType = "REG_DWORD_BIG_ENDIAN"
	RegExpandSZ          RegType = "REG_EXPAND_SZ"
	RegLink              RegType = "REG_LINK"
	RegMultiSZ           RegType = "REG_MULTI_SZ"
	RegNone              RegType = "REG_NONE"
	RegResourceList      RegType = "REG_RESOURCE_LIST"
	RegSZ                RegType = "REG_SZ"
)

// EnvVar is a single launch environment override.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CopyFile copies (or links) Src to Dst. Both are symbolic paths.
type CopyFile struct {
	Src     string `json:"src"`
	Dst     string `json:"dst"`
	Symlink bool   `json:"symlink"`
}

// DeleteFile removes Src, a symbolic path.
type DeleteFile struct {
	Src string `json:"src"`
}

// RegEdit adds a registry key, or a value under it when Name, Type and Value
// are all set. Value is a symbolic path resolved in registry mode.
// Arch selects the 64-bit registry view.
type RegEdit struct {
	Folder string  `json:"folder"`
	Name   string  `json:"name,omitempty"`
	Type   RegType `json:"type,omitempty"`
	Value  string  `json:"value,omitempty"`
	Arch   bool    `json:"arch"`
}

// SetsValue reports whether the entry writes a value rather than only
// creating the key.
func (r RegEdit) SetsValue() bool {
	return r.Name != "" && r.Type != "" && r.Value != ""
}

// Definition is a single workaround definition as stored in the catalog.
//
// Field order matches the on-disk layout written by the factory default.
type Definition struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Required bool   `json:"required"`
	Runner   Runner `json:"runner"`
	Executed bool   `json:"executed"`

	DXVKRequired        bool `json:"dxvk_required"`
	VKD3DProtonRequired bool `json:"vkd3d_proton_required"`
	WineD3DRequired     bool `json:"wined3d_required"`
	FsyncEnable         bool `json:"fsync_enable"`
	EsyncEnable         bool `json:"esync_enable"`
	EACEnable           bool `json:"eac_enable"`
	EOSEnable           bool `json:"eos_enable"`
	BattlEyeEnable      bool `json:"battleye_enable"`

	OverrideExe string   `json:"override_exe"`
	StartParams string   `json:"start_params"`
	EnvVar      []EnvVar `json:"env_var"`

	Winetricks []string     `json:"winetricks"`
	CopyFile   []CopyFile   `json:"copy_file"`
	DeleteFile []DeleteFile `json:"delete_file"`
	Regedit    []RegEdit    `json:"regedit"`
}

// Default returns a fresh factory-default definition for (id, runner).
// Every call returns a new value; nothing is shared between callers.
func Default(id string, runner Runner) *Definition {
	return &Definition{
		ID:                  id,
		Title:               "Default",
		Required:            true,
		Runner:              runner,
		DXVKRequired:        true,
		VKD3DProtonRequired: true,
		FsyncEnable:         true,
		EsyncEnable:         true,
		EnvVar:              []EnvVar{},
		Winetricks:          []string{},
		CopyFile:            []CopyFile{},
		DeleteFile:          []DeleteFile{},
		Regedit:             []RegEdit{},
	}
}

// IsTemplate reports whether d carries the reserved template id.
func (d *Definition) IsTemplate() bool {
	return d.ID == DefaultName
}

// normalize replaces nil slices with empty ones so files always carry [].
func (d *Definition) normalize() {
	if d.EnvVar == nil {
		d.EnvVar = []EnvVar{}
	}
	if d.Winetricks == nil {
		d.Winetricks = []string{}
	}
	if d.CopyFile == nil {
		d.CopyFile = []CopyFile{}
	}
	if d.DeleteFile == nil {
		d.DeleteFile = []DeleteFile{}
	}
	if d.Regedit == nil {
		d.Regedit = []RegEdit{}
	}
}
