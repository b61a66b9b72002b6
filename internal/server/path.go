package server

import "strings"

// ginPath converts a route path to gin syntax: "{name}" becomes ":name" and
// "{name:path}" becomes "*name".
func ginPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
			continue
		}
		name, conv, _ := strings.Cut(seg[1:len(seg)-1], ":")
		if conv == "path" {
			segments[i] = "*" + name
		} else {
			segments[i] = ":" + name
		}
	}
	return strings.Join(segments, "/")
}
