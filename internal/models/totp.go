package models

// TOTPSetupResponse returned when initiating 2FA setup
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`  // Base32 secret for manual entry
	QRCode      string `json:"qr_code"` // data URL of a PNG QR code
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPCodeRequest carries a 6-digit code, plus the password when disabling
type TOTPCodeRequest struct {
	Code     string `json:"code"`
	Password string `json:"password,omitempty"`
}
