// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/borkerd/borkrecord"
	"github.com/bitmark-inc/borkerd/network"
	"github.com/bitmark-inc/exitwithstatus"
)

type metadata struct {
	network network.Network
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "borkscan"
	app.Usage = "encode, decode and scan bork records"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: network.Dogecoin.String(),
			Usage: " records for `NETWORK` [dogecoin|litecoin|bitcoin]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "magic",
			Usage:     "display network markers or detect the network of a payload",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: " detect network of a `HEX` payload",
				},
			},
			Action: runMagic,
		},
		{
			Name:      "encode",
			Usage:     "encode a record into payloads",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "kind, k",
					Value: borkrecord.StandardKind.String(),
					Usage: " record `KIND` [standard|comment|rebork|extension]",
				},
				cli.StringFlag{
					Name:  "content, c",
					Value: "",
					Usage: " message `TEXT`",
				},
				cli.UintFlag{
					Name:  "nonce, N",
					Value: 0,
					Usage: " record `NONCE` 0..255",
				},
				cli.StringFlag{
					Name:  "reference, r",
					Value: "",
					Usage: " reference id `HEX` for comment and rebork",
				},
				cli.UintFlag{
					Name:  "index, i",
					Value: 0,
					Usage: " extension `INDEX` 0..255",
				},
				cli.BoolFlag{
					Name:  "script, s",
					Usage: " output null-data scripts instead of payloads",
				},
			},
			Action: runEncode,
		},
		{
			Name:      "decode-tx",
			Usage:     "decode the records of a raw transaction",
			ArgsUsage: "[HEX]\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+hex transaction in `FILE`",
				},
			},
			Action: runDecodeTx,
		},
		{
			Name:      "decode-block",
			Usage:     "decode the records of a raw block",
			ArgsUsage: "[HEX]\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+hex block in `FILE`",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: " transactions decoded in parallel `COUNT`",
				},
			},
			Action: runDecodeBlock,
		},
		{
			Name:      "scan",
			Usage:     "scan the block directory into the database",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Value: "",
					Usage: "*configuration `FILE`",
				},
			},
			Action: runScan,
		},
		{
			Name:      "watch",
			Usage:     "scan, then keep scanning block files as they are written",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Value: "",
					Usage: "*configuration `FILE`",
				},
			},
			Action: runWatch,
		},
		{
			Name:      "show",
			Usage:     "display stored records",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Value: "",
					Usage: "*configuration `FILE`",
				},
				cli.StringFlag{
					Name:  "block, b",
					Value: "",
					Usage: "+block `HASH` default is the last stored block",
				},
				cli.StringFlag{
					Name:  "txid, t",
					Value: "",
					Usage: "+transaction `TXID`",
				},
			},
			Action: runShow,
		},
		{
			Name:      "list",
			Usage:     "list stored blocks or scanned files",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Value: "",
					Usage: "*configuration `FILE`",
				},
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: " first block `HASH` from a previous list",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum blocks `COUNT`",
				},
				cli.BoolFlag{
					Name:  "files, f",
					Usage: " list scanned block files instead",
				},
			},
			Action: runList,
		},
		{
			Name:  "version",
			Usage: "display borkscan version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		n, err := network.FromString(c.GlobalString("network"))
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			network: n,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}
