package net

import (
	"errors"
	"net"
)

var errNoLANAddress = errors.New("no LAN address found")

// GetOutgoingIP picks the address viewers on the LAN should use to reach
// this machine. Private IPv4 addresses on up, non-loopback interfaces win;
// otherwise the source address of a UDP route to the internet is used.
func GetOutgoingIP() (string, error) {
	if ip, err := privateIPv4(); err == nil {
		return ip.String(), nil
	}

	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", errNoLANAddress
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

func privateIPv4() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok {
				if ip4 := ipnet.IP.To4(); ip4 != nil && ip4.IsPrivate() {
					return ip4, nil
				}
			}
		}
	}
	return nil, errNoLANAddress
}
