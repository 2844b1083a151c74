package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxsocket-go"
	"github.com/felixge/fgprof"
	"golang.org/x/text/language"
)

var (
	host    = flag.String("h", "", "Host name")
	port    = flag.Int("p", 0, "Host port")
	message = flag.String("m", "", "Send message")
	size    = flag.Int("b", gxsocket.DefaultBufferSize, "Receive buffer size in bytes.")
	t       = flag.String("t", "", "Trace level.")
	w       = flag.Int("w", 1000, "WaitTime in milliseconds.")
	lang    = flag.String("lang", "", "Used language.")
	prof    = flag.String("fgprof", "", "Serve fgprof profiles on this address, e.g. localhost:6060.")
)

func CurrentLanguage() language.Tag {
	langEnv := os.Getenv("LANG")
	if langEnv == "" {
		return language.AmericanEnglish
	}
	langEnv = strings.Split(langEnv, ".")[0]
	tag, err := language.Parse(langEnv)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func main() {
	flag.Parse()
	if *host == "" || *port == 0 || *message == "" {
		flag.PrintDefaults()
		return
	}

	if *prof != "" {
		http.DefaultServeMux.Handle("/debug/fgprof", fgprof.Handler())
		go func() {
			if err := http.ListenAndServe(*prof, nil); err != nil {
				fmt.Fprintln(os.Stderr, "fgprof:", err)
			}
		}()
	}

	ips, err := net.LookupIP(*host)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error resolving host:", err)
		return
	}
	if len(ips) == 0 {
		fmt.Fprintln(os.Stderr, "no address for host:", *host)
		return
	}
	client := gxsocket.NewGXSocketClient(ips[0], *port, *size)
	tag := CurrentLanguage()
	if *lang != "" {
		tag, err = language.Parse(*lang)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error parsing language:", err)
			return
		}
	}
	client.Localize(tag)

	completed := make(chan bool, 1)
	client.SetOnError(func(c *gxsocket.GXSocketClient, err error) {
		fmt.Fprintln(os.Stderr, "error:", err)
	})
	client.SetOnReceived(func(c *gxsocket.GXSocketClient, e gxsocket.DataEventArgs) {
		fmt.Printf("Async data: %s\n", e.String())
	})
	client.SetOnSent(func(c *gxsocket.GXSocketClient, e gxsocket.DataEventArgs) {
		fmt.Printf("Submitted %d bytes\n", e.Count)
	})
	client.SetOnSendCompleted(func(c *gxsocket.GXSocketClient, ok bool) {
		fmt.Printf("Send completed: %v\n", ok)
		completed <- ok
	})
	client.SetOnPeerReset(func(c *gxsocket.GXSocketClient) {
		fmt.Println("Connection closed by the peer.")
	})
	client.SetOnMediaStateChange(func(c *gxsocket.GXSocketClient, e gxcommon.MediaStateEventArgs) {
		fmt.Printf("Media state change : %s\n", e.State().String())
	})
	client.SetOnTrace(func(c *gxsocket.GXSocketClient, e gxcommon.TraceEventArgs) {
		fmt.Printf("Trace: %s\n", e.String())
	})

	err = client.Validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}

	if *t != "" {
		tl, err := gxcommon.TraceLevelParse(*t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		err = client.SetTrace(tl)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
	}
	fmt.Printf("Host: %s\n", client.String())
	fmt.Printf("Message: '%s'\n", *message)
	fmt.Printf("Trace level %s\n", client.GetTrace().String())

	err = client.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}
	//Close the connection.
	defer func() {
		if err := client.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close failed:", err)
		}
	}()

	client.Send([]byte(*message + "\n"))
	select {
	case <-completed:
	case <-time.After(time.Duration(*w) * time.Millisecond):
		fmt.Fprintln(os.Stderr, "send did not complete in time")
	}
	//Give the peer a moment to answer.
	time.Sleep(time.Duration(*w) * time.Millisecond)
	st := client.Stats()
	fmt.Printf("Sent %d bytes, received %d bytes, send latency p50 %v\n", st.BytesSent, st.BytesReceived, st.SendLatencyP50)
	fmt.Printf("Exit\n")
}
