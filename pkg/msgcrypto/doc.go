// Package msgcrypto implements the message encryption scheme understood by
// the Pincho mobile app.
//
// The scheme is fixed by the app and must be reproduced byte for byte:
// the key is the first 16 bytes of an unsalted single-round SHA-1 of the
// password (taken via the lowercase hex digest), the cipher is AES-128 in
// CBC mode with manual PKCS#7 padding, and the ciphertext is encoded with
// a Base64 variant that substitutes '+' with '-', '/' with '.', and '='
// with '_'. The key derivation is weak by modern standards; it is an
// interoperability contract, not a security mechanism, and must not be
// replaced with a stronger construction.
package msgcrypto
