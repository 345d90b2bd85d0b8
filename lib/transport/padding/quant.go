package padding

/** Quant aligns packet sizes to a block boundary.
 *
 * RFC 4253 section 6 requires the length of packet_length || padding_length || payload ||
 * random padding to be a multiple of the cipher block size or 8, whichever is larger, even
 * before any cipher is active. Quant finds that boundary; QuantAdjustment is the distance to it.
 *
 * Example for an 8 byte quantum and a 13 byte payload:
 * - unpadded size = 4 + 1 + 13 = 18
 * - Quant(18, 8) = 24, QuantAdjustment(18, 8) = 6
 */

// Quant returns the next multiple of quantum that is greater than or equal to input.
// For example, Quant(10, 8) returns 16, as 16 is the next multiple of 8 that's >= 10.
// A quantum below one is treated as one.
func Quant(input, quantum int) int {
	if quantum <= 1 {
		return input
	}
	if input%quantum == 0 {
		return input
	}
	return ((input / quantum) + 1) * quantum
}

// QuantAdjustment returns the amount of padding needed to make the input a multiple of quantum.
// For example, if input is 10 and quantum is 8, the adjustment would be 6 (to reach 16).
func QuantAdjustment(input, quantum int) int {
	return Quant(input, quantum) - input
}
