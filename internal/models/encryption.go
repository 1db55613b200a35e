package models

// Encryption parameters for at-rest column encryption
const (
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100000
)
