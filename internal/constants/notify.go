package constants

// Desktop notification delivery goes through the tray helper.
const (
	TrayAppIdentifier    = "widescreen-tray"
	NotifierLockfileName = "widescreen-tray.lock"
	NotificationDuration = 5000 // ms
)
