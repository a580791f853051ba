package policy

// Platform identifiers of the default monitored targets.
const (
	ChromeID    = "com.android.chrome"
	InstagramID = "com.instagram.android"
	FacebookID  = "com.facebook.katana"
	WhatsAppID  = "com.whatsapp"
)

// NewChromeTarget monitors the Chrome browser.
func NewChromeTarget() *AppTarget {
	return NewAppTarget(ChromeID, "Chrome", "Google Chrome", "chrome")
}

// NewInstagramTarget monitors Instagram.
func NewInstagramTarget() *AppTarget {
	return NewAppTarget(InstagramID, "Instagram", "Instagram")
}

// NewFacebookTarget monitors the Facebook app.
func NewFacebookTarget() *AppTarget {
	return NewAppTarget(FacebookID, "Facebook", "Facebook")
}

// NewWhatsAppTarget monitors WhatsApp.
func NewWhatsAppTarget() *AppTarget {
	return NewAppTarget(WhatsAppID, "WhatsApp", "WhatsApp")
}
