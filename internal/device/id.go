package device

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"os"
	"strings"
)

// ComputeID derives the stable per-machine identifier used as the sole
// authorization key. The raw hardware value is hashed so it never leaves
// the machine; the result is a 64-character hex string, deterministic
// across process restarts.
func ComputeID() string {
	return hashID(stableSource())
}

// stableSource returns the first available stable hardware-level value:
// a non-loopback MAC address, then the OS machine-id file, then the
// hostname. Hostname is a weaker identity but keeps the result non-empty
// on machines without either of the first two.
func stableSource() string {
	if mac := primaryMAC(); mac != "" {
		return mac
	}
	if id := machineIDFile(); id != "" {
		return id
	}
	host, err := os.Hostname()
	if err != nil {
		return "screenglance-unknown-host"
	}
	return host
}

func primaryMAC() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr.String()
	}
	return ""
}

func machineIDFile() string {
	for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	return ""
}

func hashID(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
