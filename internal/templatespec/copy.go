package templatespec

import "nathanbeddoewebdev/tspec/internal/domain"

// Builder receives the hardware, image and location constraints of a Spec.
type Builder interface {
	HardwareID(id string)
	MinCores(cores float64)
	MinRAM(megabytes int)
	MinDisk(gigabytes float64)
	HypervisorMatches(pattern string)
	ImageID(id string)
	ImageNameMatches(pattern string)
	OsFamily(family domain.OsFamily)
	OsVersionMatches(pattern string)
	Os64Bit(is64Bit bool)
	OsArchMatches(pattern string)
	OsDescriptionMatches(pattern string)
	LocationID(id string)
}

// CredentialsOverrider receives the login credentials of a Spec.
type CredentialsOverrider interface {
	OverrideLoginCredentials(creds domain.LoginCredentials)
}

// CopyTo applies every set key to b, in application order. Credentials
// built from loginUser and authenticateSudo go to o; o may be nil when the
// caller has no use for them.
func (s *Spec) CopyTo(b Builder, o CredentialsOverrider) {
	f := &s.fields
	for _, k := range s.Keys() {
		switch k {
		case KeyHardwareID:
			b.HardwareID(*f.HardwareID)
		case KeyMinCores:
			b.MinCores(*f.MinCores)
		case KeyMinRAM:
			b.MinRAM(*f.MinRAM)
		case KeyMinDisk:
			b.MinDisk(*f.MinDisk)
		case KeyHypervisorMatches:
			b.HypervisorMatches(*f.HypervisorMatches)
		case KeyImageID:
			b.ImageID(*f.ImageID)
		case KeyImageNameMatches:
			b.ImageNameMatches(*f.ImageNameMatches)
		case KeyOsFamily:
			b.OsFamily(*f.OsFamily)
		case KeyOsVersionMatches:
			b.OsVersionMatches(*f.OsVersionMatches)
		case KeyOs64Bit:
			b.Os64Bit(*f.Os64Bit)
		case KeyOsArchMatches:
			b.OsArchMatches(*f.OsArchMatches)
		case KeyOsDescriptionMatches:
			b.OsDescriptionMatches(*f.OsDescriptionMatches)
		case KeyLoginUser:
			if o != nil {
				creds, _ := s.LoginCredentials()
				o.OverrideLoginCredentials(creds)
			}
		case KeyAuthenticateSudo:
			// Carried on the credentials applied for KeyLoginUser.
		case KeyLocationID:
			b.LocationID(*f.LocationID)
		}
	}
}
