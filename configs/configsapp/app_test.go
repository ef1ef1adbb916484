package configsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvWithoutEnvFile(t *testing.T) {
	// LoadEnv logger kurulmadan önce çalışır; .env dosyası olmayan bir
	// dizinde de (konfigürasyon düz env değişkenleriyle verildiğinde)
	// panic'lememeli.
	assert.NotPanics(t, func() { LoadEnv() })
}
