package misc

import (
	"fmt"
	"net"

	"github.com/BrugadaSyndrome/bslogger"
)

func GetFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}

	port := l.Addr().(*net.TCPAddr).Port

	err = l.Close()
	if err != nil {
		return 0, err
	}

	return port, nil
}

// GetLocalAddress returns the first IPv4 address of an up, non-loopback interface. When the
// device has none the loopback address is returned so single machine runs still work.
func GetLocalAddress() string {
	logger := bslogger.NewLogger("Network", bslogger.Normal, nil)

	networkInterfaces, err := net.Interfaces()
	if err != nil {
		logger.Warningf("Failed to list network interfaces on this device: %s", err)
		return "127.0.0.1"
	}

	for _, elt := range networkInterfaces {
		if elt.Flags&net.FlagLoopback != 0 || elt.Flags&net.FlagUp == 0 {
			continue
		}
		address, err := elt.Addrs()
		if err != nil {
			logger.Warningf("Failed to get an address from network interface %s: %s", elt.Name, err)
			continue
		}

		for _, addr := range address {
			if ip, ok := addr.(*net.IPNet); ok {
				if ip4 := ip.IP.To4(); len(ip4) == net.IPv4len {
					return ip4.String()
				}
			}
		}
	}

	logger.Warning("No non-loopback interface with a valid address, using 127.0.0.1")
	return "127.0.0.1"
}

// LocalAddressWithPort joins the local address with port.
func LocalAddressWithPort(port int) string {
	return fmt.Sprintf("%s:%d", GetLocalAddress(), port)
}
