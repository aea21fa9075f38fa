package api

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// Signer produces the ts/apikey/hash triple the gateway requires on every request.
type Signer struct {
	PublicKey  string
	PrivateKey string
}

// Sign returns the auth parameters for a request issued at now.
// hash is md5(ts + privateKey + publicKey) in lowercase hex.
func (s Signer) Sign(now time.Time) url.Values {
	ts := strconv.FormatInt(now.Unix(), 10)
	return url.Values{
		"ts":     {ts},
		"apikey": {s.PublicKey},
		"hash":   {Hash(ts, s.PrivateKey, s.PublicKey)},
	}
}

// Hash computes the request signature.
func Hash(ts, privateKey, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}
