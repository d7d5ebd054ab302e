package common

const (
	AddressLength = 20
	ZeroAddress   = "0x0000000000000000000000000000000000000000"
)
