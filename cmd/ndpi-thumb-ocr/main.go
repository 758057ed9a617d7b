package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tkshfj/ndpi-thumb-ocr/internal/config"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/ocr"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/organize"
	"github.com/tkshfj/ndpi-thumb-ocr/internal/slide"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		root        = flag.String("root", ".", "directory to scan for .ndpi files")
		dryRun      = flag.Bool("dry-run", false, "print intended actions without moving or writing")
		showVersion = flag.Bool("version", false, "print version information and exit")

		ocrOn     = flag.Bool("ocr", false, "recognize label text and write the text file")
		lang      = flag.String("ocr-lang", "", "primary Tesseract language, tried first (e.g. jpn+eng)")
		langList  = flag.String("ocr-lang-candidates", "", "comma-separated language candidates, overrides the default list")
		psmList   = flag.String("ocr-psm-candidates", "", "comma-separated page segmentation modes, overrides the default list")
		oem       = flag.Int("ocr-oem", -1, "Tesseract engine mode (negative keeps the default)")
		upscale   = flag.Int("ocr-upscale", 0, "integer upscale factor before OCR (0 keeps the default)")
		threshold = flag.Int("ocr-threshold", -1, "binarization cutoff 0-255 (negative disables)")
		rotate    = flag.Int("ocr-rotate", 999, "force a single rotation: 0, 90, 180, 270 or -90")
		noCrop    = flag.Bool("ocr-no-crop-label", false, "skip the label-region crop, search the full image only")
		noAutoRot = flag.Bool("no-ocr-auto-rotate", false, "do not try rotated variants")
		qrOn      = flag.Bool("qr", false, "also decode QR codes and tag the output sections")
		qrRotList = flag.String("qr-rotations", "", "comma-separated rotations for QR decoding")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ndpi-thumb-ocr %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	// Logs go to stderr; stdout stays clean for shell pipelines.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	info, err := os.Stat(*root)
	if err != nil || !info.IsDir() {
		log.Printf("root is not a directory: %s", *root)
		os.Exit(2)
	}

	ocrCfg := config.Load()
	ocrCfg.Enabled = *ocrOn
	if *langList != "" {
		ocrCfg.LangCandidates = config.SplitList(*langList)
	}
	if *lang != "" {
		ocrCfg.LangCandidates = prepend(*lang, ocrCfg.LangCandidates)
	}
	if *psmList != "" {
		psms, err := config.SplitIntList(*psmList)
		if err != nil {
			log.Printf("bad -ocr-psm-candidates: %v", err)
			os.Exit(2)
		}
		ocrCfg.PSMCandidates = psms
	}
	if *oem >= 0 {
		ocrCfg.OEM = *oem
	}
	if *upscale >= 1 {
		ocrCfg.Upscale = *upscale
	}
	ocrCfg.Threshold = *threshold
	ocrCfg.CropLabel = !*noCrop
	ocrCfg.AutoRotate = !*noAutoRot
	if *rotate != 999 {
		switch *rotate {
		case 0, 90, 180, 270, -90:
			deg := *rotate
			ocrCfg.RotateDegrees = &deg
		default:
			log.Printf("bad -ocr-rotate %d: must be 0, 90, 180, 270 or -90", *rotate)
			os.Exit(2)
		}
	}

	qrCfg := config.DefaultQR()
	qrCfg.Enabled = *qrOn
	if *qrRotList != "" {
		rots, err := config.SplitIntList(*qrRotList)
		if err != nil {
			log.Printf("bad -qr-rotations: %v", err)
			os.Exit(2)
		}
		qrCfg.RotationCandidates = rots
	}

	p := &organize.Processor{
		Thumb:  config.DefaultThumb(),
		OCR:    ocrCfg,
		QR:     qrCfg,
		Engine: ocr.NewTesseract(),
		Open:   slide.OpenFile,
		DryRun: *dryRun,
	}
	if err := p.Run(*root); err != nil {
		log.Printf("batch finished with errors: %v", err)
		os.Exit(1)
	}
}

// prepend puts lang at the front of candidates, removing any duplicate so
// the same language is never scored twice.
func prepend(lang string, candidates []string) []string {
	out := []string{lang}
	for _, c := range candidates {
		if c != lang {
			out = append(out, c)
		}
	}
	return out
}
