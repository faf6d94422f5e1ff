package crypto

// ar2Table holds the four 32-entry substitution rows of the AR2 octet cipher.
var ar2Table = [4][32]byte{
	{
		0x00, 0x1F, 0x9B, 0x69, 0xA5, 0x80, 0x90, 0xB2, 0xD7, 0x44, 0xEC, 0x75, 0x3B, 0x62, 0x0C, 0xA3,
		0xA6, 0xE4, 0x1F, 0x4C, 0x05, 0xE4, 0x44, 0x6E, 0xD9, 0x5B, 0x34, 0xE6, 0x08, 0x31, 0x91, 0x72,
	},
	{
		0x00, 0xAE, 0xF3, 0x7B, 0x12, 0xC9, 0x83, 0xF0, 0xA9, 0x57, 0x50, 0x08, 0x04, 0x81, 0x02, 0x21,
		0x96, 0x09, 0x0F, 0x90, 0xC3, 0x62, 0x27, 0x21, 0x3B, 0x22, 0x4E, 0x88, 0xF5, 0xC5, 0x75, 0x91,
	},
	{
		0x00, 0xE3, 0xA2, 0x45, 0x40, 0xE0, 0x09, 0xEA, 0x42, 0x65, 0x1C, 0xC1, 0xEB, 0xB0, 0x69, 0x14,
		0x01, 0xD2, 0x8E, 0xFB, 0xFA, 0x86, 0x09, 0x95, 0x1B, 0x61, 0x14, 0x0E, 0x99, 0x21, 0xEC, 0x40,
	},
	{
		0x00, 0x25, 0x6D, 0x4F, 0xC5, 0xCA, 0x04, 0x39, 0x3A, 0x7D, 0x0D, 0xF1, 0x43, 0x05, 0x71, 0x66,
		0x82, 0x31, 0x21, 0xD8, 0xFE, 0x4D, 0xC2, 0xC8, 0xCC, 0x09, 0xA0, 0x06, 0x49, 0xD5, 0xF1, 0x83,
	},
}
