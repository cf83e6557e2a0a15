// Package rest implements the "rest" map processor.
//
// The expanded map source is treated as a URL and fetched with an HTTP GET.
// The response must be a flat JSON object; each map entry names a JSON
// field in Src and a destination attribute in Dst.
//
//	maps:
//	  - name: lookup-profile
//	    processor: rest
//	    src: "http://profiles.internal/users?name=%{User-Name}"
//	    maps:
//	      - dst: "reply:Framed-IP-Address"
//	        src: ip_address
//
// Attribute values expanded into the URL pass through the module's escape
// function (URL query escaping).
//
// This processor declares no per-instance data: its instantiate hook only
// validates the map list.
package rest
