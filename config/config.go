package config

const (
	// ADC counts on the 12-bit scale above which the bridge is cut.
	CurrentThreshold = 3400
	// Samples per batch of the current-sense ring.
	CurrentRingSize = 200

	// Quadrature counts per shaft revolution after 4x decoding.
	EncoderCPR = 1000

	// Scale of the ACS712-style sense amplifier, microamps per ADC count.
	SenseMicroampPerCount = 2150
	SenseZeroCount        = 2048

	UITickHz = 50
	// Boot mark hold before the menu appears.
	BootSplashMS = 1200
)
