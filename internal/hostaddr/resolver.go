package hostaddr

import (
	"net"

	"github.com/rs/zerolog"
)

// Resolve returns the host's routable IPv4 address. It tries the address of
// the default-route interface first, then the first non-loopback IPv4 bound
// to any interface, and finally falls back to loopback. It never fails.
func Resolve(logger zerolog.Logger) string {
	if ip := defaultRouteIP(); ip != "" {
		logger.Debug().Str("ip", ip).Msg("Resolved host address from default route")
		return ip
	}
	if ip := firstInterfaceIP(); ip != "" {
		logger.Debug().Str("ip", ip).Msg("Resolved host address from interface listing")
		return ip
	}
	logger.Debug().Msg("Falling back to loopback host address")
	return "127.0.0.1"
}

// defaultRouteIP reports the local address a UDP socket dialed toward a public
// address would use. No packet is sent.
func defaultRouteIP() string {
	conn, err := net.Dial("udp4", "8.8.8.8:53")
	if err != nil {
		return ""
	}
	defer conn.Close()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || localAddr.IP == nil {
		return ""
	}
	if v4 := localAddr.IP.To4(); v4 != nil {
		return v4.String()
	}
	return ""
}

func firstInterfaceIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	return firstIPv4(addrs)
}

// firstIPv4 picks the first non-loopback IPv4 from an address listing.
func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}
