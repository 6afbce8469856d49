package panel

// 16x16 tile art, row-major, MSB-first, two bytes per row.

// rotorFrames is a two-blade rotor spinning a quarter turn over four
// frames.
var rotorFrames = [][]byte{
	{
		0x00, 0x00,
		0x01, 0x80,
		0x01, 0x80,
		0x01, 0x80,
		0x01, 0x80,
		0x01, 0x80,
		0x03, 0xC0,
		0x07, 0xE0,
		0x07, 0xE0,
		0x03, 0xC0,
		0x01, 0x80,
		0x01, 0x80,
		0x01, 0x80,
		0x01, 0x80,
		0x01, 0x80,
		0x00, 0x00,
	},
	{
		0x00, 0x00,
		0x00, 0x06,
		0x00, 0x0C,
		0x00, 0x18,
		0x00, 0x30,
		0x00, 0x60,
		0x03, 0xC0,
		0x07, 0xE0,
		0x07, 0xE0,
		0x07, 0xC0,
		0x0C, 0x00,
		0x18, 0x00,
		0x30, 0x00,
		0x60, 0x00,
		0xC0, 0x00,
		0x00, 0x00,
	},
	{
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x03, 0xC0,
		0x7F, 0xFE,
		0x7F, 0xFE,
		0x03, 0xC0,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
	},
	{
		0x00, 0x00,
		0xC0, 0x00,
		0x60, 0x00,
		0x30, 0x00,
		0x18, 0x00,
		0x0C, 0x00,
		0x07, 0xC0,
		0x07, 0xE0,
		0x07, 0xE0,
		0x03, 0xC0,
		0x00, 0x60,
		0x00, 0x30,
		0x00, 0x18,
		0x00, 0x0C,
		0x00, 0x06,
		0x00, 0x00,
	},
}

// iconWave is one period of the sense trace.
var iconWave = []byte{
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0x7F, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0x00,
	0x01, 0xFE,
	0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
}

var iconGear = []byte{
	0x00, 0x00,
	0x03, 0xC0,
	0x03, 0xC0,
	0x0F, 0xF0,
	0x1F, 0xF8,
	0x1F, 0xF8,
	0x7F, 0xFE,
	0x7C, 0x3E,
	0x7C, 0x3E,
	0x7F, 0xFE,
	0x1F, 0xF8,
	0x1F, 0xF8,
	0x0F, 0xF0,
	0x03, 0xC0,
	0x03, 0xC0,
	0x00, 0x00,
}

var iconTerm = []byte{
	0x00, 0x00,
	0x7F, 0xFE,
	0x40, 0x02,
	0x40, 0x02,
	0x50, 0x02,
	0x48, 0x02,
	0x44, 0x02,
	0x48, 0x02,
	0x50, 0x02,
	0x40, 0x02,
	0x41, 0xE2,
	0x40, 0x02,
	0x40, 0x02,
	0x7F, 0xFE,
	0x00, 0x00,
	0x00, 0x00,
}

var iconInfo = []byte{
	0x00, 0x00,
	0x07, 0xE0,
	0x18, 0x18,
	0x20, 0x04,
	0x40, 0x02,
	0x41, 0x82,
	0x40, 0x02,
	0x41, 0x82,
	0x41, 0x82,
	0x41, 0x82,
	0x41, 0x82,
	0x20, 0x04,
	0x18, 0x18,
	0x07, 0xE0,
	0x00, 0x00,
	0x00, 0x00,
}
