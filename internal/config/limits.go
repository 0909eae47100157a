package config

// MaxImageBytes caps a single uploaded entry image.
const MaxImageBytes = 10 << 20
