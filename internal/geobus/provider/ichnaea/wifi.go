// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ichnaea

import (
	"fmt"
	"strings"

	"github.com/mdlayher/wifi"
)

// WifiScanner is a Scanner backed by the nl80211 interface of the kernel.
type WifiScanner struct {
	wlan *wifi.Client
}

func NewWifiScanner() (*WifiScanner, error) {
	wlan, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create wifi client: %w", err)
	}
	return &WifiScanner{wlan: wlan}, nil
}

// AccessPoints returns the access points seen by all station interfaces. Hidden networks and
// networks that opted out via the "_nomap" suffix are skipped.
func (s *WifiScanner) AccessPoints() ([]WirelessNetwork, error) {
	ifaces, err := s.wlan.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	var list []WirelessNetwork
	for _, iface := range ifaces {
		if iface.Type != wifi.InterfaceTypeStation {
			continue
		}
		aps, err := s.wlan.AccessPoints(iface)
		if err != nil {
			continue
		}
		for _, ap := range aps {
			if ap.SSID == "" || ap.SSID[0] == '\x00' || strings.HasSuffix(ap.SSID, "_nomap") {
				continue
			}
			list = append(list, WirelessNetwork{
				SignalStrength: ap.Signal / 100,
				MACAddress:     ap.BSSID.String(),
				LastSeen:       ap.LastSeen.Milliseconds(),
			})
		}
	}
	return list, nil
}
