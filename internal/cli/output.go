package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case User:
		o.printUser(v)
	case Photo:
		o.printPhoto(v)
	case []Photo:
		for _, p := range v {
			o.printPhoto(p)
		}
		if len(v) == 0 {
			fmt.Println("no photos")
		}
	case Collection:
		o.printCollection(v)
	case []Collection:
		for _, c := range v {
			o.printCollection(c)
		}
		if len(v) == 0 {
			fmt.Println("no collections")
		}
	case ShareResult:
		o.printShareResult(v)
	case SharedCollection:
		o.printSharedCollection(v)
	case HealthResult:
		fmt.Printf("server is %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("signed in as %s <%s> (%s)\n", a.User.Name, a.User.Email, a.User.Role)
	fmt.Printf("session expires %s\n", a.ExpiresAt)
}

func (o *Output) printUser(u User) {
	fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.Role)
}

func (o *Output) printPhoto(p Photo) {
	uploader := ""
	if p.Uploader != nil {
		uploader = " by " + p.Uploader.Name
	}
	fmt.Printf("%s  %s (%d bytes)%s\n", p.ID, p.OriginalName, p.SizeBytes, uploader)
}

func (o *Output) printCollection(c Collection) {
	shared := ""
	if c.Shared {
		shared = "  [shared]"
		if c.ShareExpiresAt != "" {
			shared = fmt.Sprintf("  [shared, expires %s]", c.ShareExpiresAt)
		}
	}
	fmt.Printf("%s  %s%s\n", c.ID, c.Name, shared)
}

func (o *Output) printShareResult(s ShareResult) {
	fmt.Printf("share link: %s\n", s.ShareURL)
	if s.ExpiresAt != "" {
		fmt.Printf("expires: %s\n", s.ExpiresAt)
	} else {
		fmt.Println("expires: never")
	}
}

func (o *Output) printSharedCollection(sc SharedCollection) {
	fmt.Printf("%s, shared by %s (%d photos)\n", sc.Name, sc.OwnerName, sc.PhotoCount)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	for _, p := range sc.Photos {
		fmt.Printf("  %s  %s\n", p.ID, p.OriginalName)
	}
}
