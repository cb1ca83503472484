package provider

// DefaultRegistrations lists every built-in provider. Order matters
// twice: equal-length prefixes resolve in declaration order, and the
// empty-query mode is the first entry.
func DefaultRegistrations() []Registration {
	return []Registration{
		{Mode: ModeApps, Factory: NewApps},
		{Mode: ModeWindows, Factory: NewWindows},
		{Mode: ModeProcesses, Factory: NewProcesses},
		{Mode: ModeNetwork, Factory: NewNetwork},
		{Mode: ModeBluetooth, Factory: NewBluetooth},
		{Mode: ModeAudio, Factory: NewAudio},
		{Mode: ModeClipboard, Factory: NewClipboard},
		{Mode: ModeNotes, Factory: NewNotes},
		{Mode: ModeTodos, Factory: NewTodos},
		{Mode: ModeSnippets, Factory: NewSnippets},
		{Mode: ModeSSH, Factory: NewSSH},
		{Mode: ModeDocker, Factory: NewDocker},
		{Mode: ModeEmoji, Factory: NewEmoji},
		{Mode: ModeFiles, Factory: NewFiles},
		{Mode: ModeRecent, Factory: NewRecent},
		{Mode: ModeTimer, Factory: NewTimer},
		{Mode: ModePassman, Factory: NewPassman},
		{Mode: ModeAI, Factory: NewAI},
		{Mode: ModeWebSearch, Factory: NewWebSearch},
		{Mode: ModeCalculator, Factory: NewCalculator},
		{Mode: ModeConverter, Factory: NewConverter},
		{Mode: ModeScripts, Factory: NewScripts},
	}
}
