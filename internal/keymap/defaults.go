package keymap

// Tier names of the compiled-in policy.
const (
	TierGeneral        = "general"
	TierDeviceSpecific = "device-specific"
)

// DefaultPolicy returns the mapping policy installed by the daemon.
func DefaultPolicy() Policy {
	return Policy{
		{
			Name: TierGeneral,
			Rules: []SwapRule{
				Swap(Usage(KeyRightAlt), Usage(KeyRightGUI)),
			},
		},
		{
			Name: TierDeviceSpecific,
			Rules: []SwapRule{
				Swap(Usage(KeyNonUSBackslash), Usage(KeyGrave)),
			},
			Conditional: true,
		},
	}
}
