// Small smoke-test CLI for exercising the platform API from the terminal.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultBase = "http://localhost:4000"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	base := os.Getenv("API_BASE")
	if base == "" {
		base = defaultBase
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	// University admin
	case "login":
		postJSON(base+"/api/login", args)
	case "logout":
		postNoBody(base + "/api/university/logout")
	case "profile":
		get(base + "/api/university/profile")
	case "regenerate-token":
		postNoBody(base + "/api/university/regenerate-token")
	case "info":
		getWithToken(base+"/api/university/info", args)

	// Super admin console
	case "sa-login":
		postJSON(base+"/api/super-admin/login", args)
	case "sa-list":
		get(base + "/api/super-admin/universities")
	case "sa-verify":
		postJSON(base+"/api/super-admin/universities/"+mustArg(args, 0)+"/verify", args[1:])
	case "sa-approve":
		postNoBody(base + "/api/super-admin/approve-university/" + mustArg(args, 0))

	// Credentials (machine API)
	case "cred-list":
		getWithToken(base+"/api/nft/credentials", args)

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Usage: api-test <command> [options]

Commands:
  login             -d '{"email":...,"password":...}'   POST /api/login
  logout                                                POST /api/university/logout
  profile                                               GET  /api/university/profile
  regenerate-token                                      POST /api/university/regenerate-token
  info              -t <api-token>                      GET  /api/university/info

  sa-login          -d '{"email":...,"password":...}'   POST /api/super-admin/login
  sa-list                                               GET  /api/super-admin/universities
  sa-verify         <id> -d '{"status":"approved"}'     POST /api/super-admin/universities/:id/verify
  sa-approve        <uuid>                              POST /api/super-admin/approve-university/:uuid

  cred-list         -t <api-token>                      GET  /api/nft/credentials

Environment:
  API_BASE   override default http://localhost:4000

Issuing a credential needs multipart upload; use curl:
  curl -H "x-api-token: $TOKEN" -F document=@diploma.pdf \
       -F studentId=S-1001 -F name="Grace Hopper" \
       $API_BASE/api/nft/issue-credential`)
}

func mustArg(args []string, idx int) string {
	if len(args) <= idx {
		fmt.Fprintf(os.Stderr, "missing argument %d\n", idx+1)
		usage()
		os.Exit(1)
	}
	return args[idx]
}

func get(url string) {
	do("GET", url, nil, "")
}

func getWithToken(url string, args []string) {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	token := fs.String("t", "", "API token")
	fs.Parse(args)
	do("GET", url, nil, *token)
}

func postNoBody(url string) {
	do("POST", url, nil, "")
}

func postJSON(url string, args []string) {
	do("POST", url, pickJSON(args), "")
}

func pickJSON(args []string) io.Reader {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	body := fs.String("d", "", "request JSON body")
	fs.Parse(args)
	var r io.Reader
	if *body != "" {
		r = bytes.NewBufferString(*body)
	} else {
		// read from stdin
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			r = os.Stdin
		}
	}
	return r
}

func do(method, url string, body io.Reader, token string) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Println("req:", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-api-token", token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("do:", err)
		os.Exit(1)
	}
	defer res.Body.Close()

	fmt.Printf("→ %s %s\n", method, url)
	fmt.Printf("← %d %s\n\n", res.StatusCode, http.StatusText(res.StatusCode))
	io.Copy(os.Stdout, res.Body)
	fmt.Println()
}
