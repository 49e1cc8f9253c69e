package templatespec

// Key identifies one of the recognized specification keys.
type Key int

const (
	KeyHardwareID Key = iota
	KeyMinCores
	KeyMinRAM
	KeyMinDisk
	KeyHypervisorMatches
	KeyImageID
	KeyImageNameMatches
	KeyOsFamily
	KeyOsVersionMatches
	KeyOs64Bit
	KeyOsArchMatches
	KeyOsDescriptionMatches
	KeyLoginUser
	KeyAuthenticateSudo
	KeyLocationID

	numKeys
)

// Kind is the type of value a key accepts.
type Kind int

const (
	KindString Kind = iota
	KindDouble
	KindInteger
	KindBoolean
	KindOsFamily
)

func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindOsFamily:
		return "OsFamily"
	default:
		return "string"
	}
}

type keyDef struct {
	name string
	kind Kind
}

var keyDefs = [numKeys]keyDef{
	KeyHardwareID:           {"hardwareId", KindString},
	KeyMinCores:             {"minCores", KindDouble},
	KeyMinRAM:               {"minRam", KindInteger},
	KeyMinDisk:              {"minDisk", KindDouble},
	KeyHypervisorMatches:    {"hypervisorMatches", KindString},
	KeyImageID:              {"imageId", KindString},
	KeyImageNameMatches:     {"imageNameMatches", KindString},
	KeyOsFamily:             {"osFamily", KindOsFamily},
	KeyOsVersionMatches:     {"osVersionMatches", KindString},
	KeyOs64Bit:              {"os64Bit", KindBoolean},
	KeyOsArchMatches:        {"osArchMatches", KindString},
	KeyOsDescriptionMatches: {"osDescriptionMatches", KindString},
	KeyLoginUser:            {"loginUser", KindString},
	KeyAuthenticateSudo:     {"authenticateSudo", KindBoolean},
	KeyLocationID:           {"locationId", KindString},
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, numKeys)
	for i, def := range keyDefs {
		m[def.name] = Key(i)
	}
	return m
}()

// AllKeys returns every recognized key in application order.
func AllKeys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// LookupKey returns the key with the given name. Names are case-sensitive.
func LookupKey(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// String returns the key name as written in a specification.
func (k Key) String() string {
	if !k.valid() {
		return "unknown"
	}
	return keyDefs[k].name
}

// Kind returns the type of value the key accepts.
func (k Key) Kind() Kind {
	if !k.valid() {
		return KindString
	}
	return keyDefs[k].kind
}

func (k Key) valid() bool {
	return k >= 0 && k < numKeys
}
