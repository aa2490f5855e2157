// Command neo-shaderc compiles the background's WGSL shader to SPIR-V for
// native pipelines.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"neo-background/internal/background"
)

func main() {
	out := flag.String("o", "background.spv", "output SPIR-V file")
	printSource := flag.Bool("wgsl", false, "print the WGSL source and exit")
	flag.Parse()

	if *printSource {
		fmt.Print(background.NativeSource)
		return
	}

	words, err := background.CompileNative()
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := binary.Write(f, binary.LittleEndian, words); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d words, start time %.0fs)", *out, len(words), background.NativeStartSeconds)
}
