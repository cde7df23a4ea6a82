package consistenthash

import "hash/crc32"

// Config controls the virtual replica count and hash function of a ring.
type Config struct {
	Replicas int
	HashFunc func(data []byte) uint32
}

// DefaultConfig provides baseline ring settings.
var DefaultConfig = &Config{
	Replicas: 50,
	HashFunc: crc32.ChecksumIEEE,
}
