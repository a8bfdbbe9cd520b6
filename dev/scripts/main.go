package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sigap/sigap-server/utils-go"
)

// Prints a bcrypt hash for -password and a fresh RS256 key pair encoded the
// way JWT_PRIVATE_KEY and JWT_PUBLIC_KEY expect.
func main() {
	password := flag.String("password", "1234", "password to hash")
	bits := flag.Int("bits", 2048, "rsa key size")
	flag.Parse()

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	key, err := rsa.GenerateKey(rand.Reader, *bits)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate rsa key")
	}

	private := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	publicDer, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal public key")
	}
	public := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDer})

	fmt.Println("PASSWORD_HASH=" + hash)
	fmt.Println("JWT_PRIVATE_KEY=" + base64.StdEncoding.EncodeToString(private))
	fmt.Println("JWT_PUBLIC_KEY=" + base64.StdEncoding.EncodeToString(public))
}
