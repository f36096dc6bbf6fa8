package ssdp

import (
	"strings"
	"testing"
)

func TestSearchRequest(t *testing.T) {
	got := string(SearchRequest(3))
	want := "M-SEARCH * HTTP/1.1\r\n" +
		"ST:UPnP:rootdevice\r\n" +
		"MX:3\r\n" +
		"Man:ssdp:discover\r\n" +
		"HOST:239.255.255.250:1900\r\n" +
		"\r\n"

	if got != want {
		t.Errorf("SearchRequest(3) = %q, want %q", got, want)
	}
}

func TestSearchRequest_DefaultMX(t *testing.T) {
	got := string(SearchRequest(0))
	if !strings.Contains(got, "MX:3\r\n") {
		t.Errorf("SearchRequest(0) = %q, want default MX:3", got)
	}
}

func TestGroupAddr(t *testing.T) {
	addr := GroupAddr()
	if addr.String() != "239.255.255.250:1900" {
		t.Errorf("GroupAddr() = %v, want 239.255.255.250:1900", addr)
	}
	if !addr.IP.IsMulticast() {
		t.Error("GroupAddr() should be a multicast address")
	}
}
