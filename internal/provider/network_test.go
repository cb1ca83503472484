package provider

import "testing"

func TestParseWifiList(t *testing.T) {
	output := "HomeNet:82:WPA2:*\nCafe\\: Guest:40:--:\n:50:WPA2:\nHomeNet:60:WPA2:\n"
	networks := parseWifiList(output)

	if len(networks) != 2 {
		t.Fatalf("expected 2 networks, got %d", len(networks))
	}
	if networks[0].SSID != "HomeNet" || networks[0].Signal != 82 || !networks[0].InUse {
		t.Fatalf("unexpected first network: %+v", networks[0])
	}
	if networks[1].SSID != "Cafe: Guest" {
		t.Fatalf("escaped colon not unescaped: %q", networks[1].SSID)
	}
}

func TestSplitTerse(t *testing.T) {
	fields := splitTerse(`a\:b:42:WPA2:*`)
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d: %v", len(fields), fields)
	}
	if fields[0] != "a:b" {
		t.Fatalf("escape handling broken: %q", fields[0])
	}
}

func TestSecurityLabel(t *testing.T) {
	if securityLabel("--") != "open" || securityLabel("") != "open" {
		t.Fatal("expected open label for unsecured networks")
	}
	if securityLabel("WPA2") != "WPA2" {
		t.Fatal("expected security string passed through")
	}
}
