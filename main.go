// main.go - wires DSPState, EffectChain and a backend into a running stream

package main

import (
	"flag"
	"log"
)

func main() {
	sampleRate := flag.Int("samplerate", 48000, "audio sample rate in Hz")
	blockSize := flag.Int("blocksize", 512, "frames per callback")
	presetName := flag.String("preset", "clean", "initial preset to load")
	useOto := flag.Bool("oto", false, "use the playback-only oto backend instead of full-duplex portaudio")
	flag.Parse()

	state, err := NewDSPState(float32(*sampleRate), *blockSize)
	if err != nil {
		log.Fatalf("ampcore: %v", err)
	}

	chain := NewEffectChain(state)
	if err := LoadPreset(chain, state, *presetName); err != nil {
		log.Fatalf("ampcore: loading preset %q: %v", *presetName, err)
	}

	if *useOto {
		player, err := NewOtoPlayer(*sampleRate)
		if err != nil {
			log.Fatalf("ampcore: opening oto backend: %v", err)
		}
		input := NewInputRing(*sampleRate * 2)
		player.SetupPlayer(chain, input)
		player.Start()
		defer player.Close()
		log.Printf("ampcore: running preset %q on the oto backend; press ctrl-C to stop", *presetName)
		select {}
	}

	adapter := NewIOAdapter(chain, state)
	backend, err := OpenPortAudioBackend(adapter, float64(*sampleRate), *blockSize)
	if err != nil {
		log.Fatalf("ampcore: opening portaudio backend: %v", err)
	}
	defer backend.Close()

	if err := backend.Start(); err != nil {
		log.Fatalf("ampcore: starting stream: %v", err)
	}
	defer backend.Stop()

	log.Printf("ampcore: running preset %q at %dHz, block size %d; press ctrl-C to stop", *presetName, *sampleRate, *blockSize)
	select {}
}
