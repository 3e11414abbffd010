// Package pgp verifies detached signatures on repository databases
package pgp

import (
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pkg/errors"
)

// Verifier checks detached database signatures against a trusted keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates verifier loading the trusted keyring from keyringPath
func NewVerifier(keyringPath string) (*Verifier, error) {
	f, err := os.Open(keyringPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load keyring %s", keyringPath)
	}
	defer func() {
		_ = f.Close()
	}()

	keyring, err := openpgp.ReadKeyRing(f)
	if err != nil {
		_, _ = f.Seek(0, 0)
		keyring, err = openpgp.ReadArmoredKeyRing(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load keyring %s", keyringPath)
	}

	return &Verifier{keyring: keyring}, nil
}

// VerifyDetached checks that signature signs message with a key from the
// trusted keyring
func (v *Verifier) VerifyDetached(message, signature io.Reader) error {
	_, err := openpgp.CheckDetachedSignature(v.keyring, message, signature, &packet.Config{})
	if err != nil {
		return errors.Wrap(err, "invalid database signature")
	}
	return nil
}

// VerifyDatabase checks the detached signature next to databasePath when
// one exists. A missing signature file is not an error.
func VerifyDatabase(keyringPath, databasePath string) error {
	signature, err := os.Open(databasePath + ".sig")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "unable to read signature for %s", databasePath)
	}
	defer func() {
		_ = signature.Close()
	}()

	verifier, err := NewVerifier(keyringPath)
	if err != nil {
		return err
	}

	message, err := os.Open(databasePath)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", databasePath)
	}
	defer func() {
		_ = message.Close()
	}()

	return verifier.VerifyDetached(message, signature)
}
