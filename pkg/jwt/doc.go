// Package jwt provides RS256 JSON Web Token signing and validation for
// the Guildhall API.
//
// Tokens carry the account's identity and role. Sign issues a token for
// an authenticated user:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/jwt.pem",
//	    Issuer:         "guildhall-api",
//	    ExpirationMins: 1440,
//	})
//
//	token, err := svc.Sign(jwt.Claims{
//	    Subject: user.ID,
//	    UserID:  user.ID,
//	    Email:   user.Email,
//	    Role:    string(user.Role),
//	})
//
// Validate verifies the signature, expiry, and issuer, and returns the
// claims. A service constructed with only a public key can validate but
// not sign, which suits read-only deployments.
package jwt
