package shotloader

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// FolderPath resolves the archive folder for a shot. Shots are filed by
// ten-thousands and hundreds blocks, e.g. shot 109756 lives in
// <root>/100000/9700/T109756.
func FolderPath(shot int) (string, error) {
	if shot <= 0 {
		return "", fmt.Errorf("invalid shot number %d", shot)
	}
	root := configuration.DataRoot
	if root == "" {
		switch runtime.GOOS {
		case "darwin":
			root = "/Volumes/Pegasus_Data_Archive/p3data"
		case "windows":
			root = `P:\p3data`
		case "linux":
			root = "/mnt/Pegasus_Data_Archive/p3data"
		default:
			return "", fmt.Errorf("no archive mount known for OS %q", runtime.GOOS)
		}
	}
	shotstr := fmt.Sprintf("%06d", shot)
	return filepath.Join(root, shotstr[:2]+"0000", shotstr[2:4]+"00", "T"+shotstr), nil
}
