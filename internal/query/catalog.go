package query

// Argument helpers shared by the catalog.
var (
	argMPN        = Arg{Name: "mpn", Kind: KindString, Usage: "mining profile name, the coin ticker (e.g. BTC)"}
	argSubaccount = Arg{Name: "subaccount", Kind: KindString, Usage: "subaccount username"}
	argFirst      = Arg{Name: "first", Kind: KindInt, Usage: "limits the number of data points returned"}
)

func interval(name, usage string) Arg {
	return Arg{Name: name, Kind: KindString, Usage: usage + ": _15_MINUTE, _1_HOUR, _6_HOUR or _1_DAY"}
}

const workerDetailsFields = `
          hashrate
          status
          efficiency
          validShares
          staleShares
          badShares
          duplicateShares
          invalidShares
          lowDiffShares`

func workersOverviewDocument(detailsField string) string {
	return `query getWorkersOverview($mpn: MiningProfileName, $username: String, $first: Int) {
  miners(
    filter: {
      miningProfileName: { equalTo: $mpn }
      user: { username: { equalTo: $username } }
    }
    first: $first
  ) {
    edges {
      node {
        workerName
        ` + detailsField + ` {` + workerDetailsFields + `
        }
      }
    }
  }
}`
}

func init() {
	register(&Operation{
		Name:  "get-all-transaction-history",
		Short: "All on-chain transactions of a subaccount",
		Field: "getAllTransactionHistory",
		Document: `query getAllTransactionHistory($cid: CurrencyProfileName!, $uname: String!, $first: Int) {
  getAllTransactionHistory(cid: $cid, uname: $uname, first: $first, orderBy: CREATED_AT_DESC) {
    edges {
      node {
        transactionId
        amount
        status
        payoutAddress
        currency
        createdAt
      }
    }
  }
}`,
		Args: []Arg{argMPN, argSubaccount, argFirst},
		bind: func(v Values) map[string]any {
			return map[string]any{"cid": v.String("mpn"), "uname": v.String("subaccount"), "first": v.Int("first")}
		},
	})

	register(&Operation{
		Name:     "get-subaccounts",
		Short:    "Subaccounts owned by the API key's profile",
		Field:    "users",
		Document: `query getSubaccounts($first: Int, $offset: Int) {users(first: $first, offset: $offset) {edges {node {username}}}}`,
		Args: []Arg{
			argFirst,
			{Name: "offset", Kind: KindInt, Usage: "skips elements of the data points returned", Default: 0},
		},
		Resolver: true,
		bind: func(v Values) map[string]any {
			return map[string]any{"first": v.Int("first"), "offset": v.Int("offset")}
		},
	})

	register(&Operation{
		Name:  "get-subaccount-mining-summary",
		Short: "Mining summary of a subaccount",
		Field: "getMiningSummary",
		Document: `query getMiningSummary($mpn: MiningProfileName!, $userName: String!, $inputDuration: HashrateIntervals!) {
  getMiningSummary(mpn: $mpn, userName: $userName, inputDuration: $inputDuration) {
    hashrate
    validShares
    invalidShares
    staleShares
    badShares
    lowDiffShares
    revenue
  }
}`,
		Args: []Arg{argSubaccount, argMPN, interval("input-interval", "summary lookback")},
		bind: func(v Values) map[string]any {
			return map[string]any{"userName": v.String("subaccount"), "mpn": v.String("mpn"), "inputDuration": v.String("input-interval")}
		},
	})

	register(&Operation{
		Name:  "get-subaccount-hashrate-history",
		Short: "Hashrate timeseries of a subaccount",
		Field: "getHashrateHistory",
		Document: `query getHashrateHistory($inputUsername: String, $mpn: MiningProfileName, $inputInterval: HashrateIntervals, $first: Int) {
  getHashrateHistory(inputUsername: $inputUsername, mpn: $mpn, inputInterval: $inputInterval, first: $first) {
    edges {
      node {
        time
        hashrate
      }
    }
  }
}`,
		Args:     []Arg{argSubaccount, argMPN, interval("input-interval", "timeseries bucket"), argFirst},
		Resolver: true,
		bind: func(v Values) map[string]any {
			return map[string]any{
				"inputUsername": v.String("subaccount"),
				"mpn":           v.String("mpn"),
				"inputInterval": v.String("input-interval"),
				"first":         v.Int("first"),
			}
		},
	})

	register(&Operation{
		Name:  "get-worker-details",
		Short: "Hashrate and efficiency of every worker over a custom lookback",
		Field: "getWorkerDetails",
		Document: `query getWorkerDetails($duration: IntervalInput!, $mpn: MiningProfileName!, $uname: String!, $first: Int) {
  getWorkerDetails(duration: $duration, mpn: $mpn, uname: $uname, first: $first) {
    edges {
      node {
        workerName
        hashrate
        validShares
        staleShares
        badShares
        duplicateShares
        invalidShares
        lowDiffShares
        efficiency
        revenue
        status
        updatedAt
      }
    }
  }
}`,
		Args: []Arg{
			argSubaccount,
			argMPN,
			{Name: "minutes", Kind: KindInt, Usage: "minutes of lookback used to compute the metrics"},
			argFirst,
		},
		bind: func(v Values) map[string]any {
			return map[string]any{
				"duration": map[string]any{"minutes": v.Int("minutes")},
				"mpn":      v.String("mpn"),
				"uname":    v.String("subaccount"),
				"first":    v.Int("first"),
			}
		},
	})

	bindOverview := func(v Values) map[string]any {
		return map[string]any{"username": v.String("subaccount"), "mpn": v.String("mpn"), "first": v.Int("first")}
	}
	register(&Operation{
		Name:     "get-worker-details-1h",
		Short:    "Hashrate and efficiency of every worker in the last hour",
		Field:    "miners",
		Document: workersOverviewDocument("details1H"),
		Args:     []Arg{argSubaccount, argMPN, argFirst},
		Resolver: true,
		bind:     bindOverview,
	})
	register(&Operation{
		Name:     "get-worker-details-24h",
		Short:    "Hashrate and efficiency of every worker in the last 24 hours",
		Field:    "miners",
		Document: workersOverviewDocument("details24H"),
		Args:     []Arg{argSubaccount, argMPN, argFirst},
		Resolver: true,
		bind:     bindOverview,
	})

	register(&Operation{
		Name:  "get-worker-hashrate-history",
		Short: "Hashrate timeseries of a single worker",
		Field: "getWorkerHashrateHistory",
		Document: `query getWorkerHashrateHistory($inputUsername: String!, $workerName: String!, $mpn: MiningProfileName!, $inputBucket: HashrateIntervals!, $inputDuration: HashrateIntervals!, $first: Int) {
  getWorkerHashrateHistory(username: $inputUsername, workerName: $workerName, mpn: $mpn, inputBucket: $inputBucket, inputDuration: $inputDuration, first: $first) {
    edges {
      node {
        time
        hashrate
      }
    }
  }
}`,
		Args: []Arg{
			argSubaccount,
			{Name: "workername", Kind: KindString, Usage: "rig identifier"},
			argMPN,
			interval("input-bucket", "timeseries bucket"),
			interval("input-duration", "timeseries lookback"),
			argFirst,
		},
		Resolver: true,
		bind: func(v Values) map[string]any {
			return map[string]any{
				"inputUsername": v.String("subaccount"),
				"workerName":    v.String("workername"),
				"mpn":           v.String("mpn"),
				"inputBucket":   v.String("input-bucket"),
				"inputDuration": v.String("input-duration"),
				"first":         v.Int("first"),
			}
		},
	})

	register(&Operation{
		Name:  "get-subaccount-workers-status",
		Short: "Active, warning and dead worker counts of a subaccount",
		Field: "getUserMinersStatusCount",
		Document: `query getUserMinersStatusCount($usrname: String!, $mpn: MiningProfileName!) {
  getUserMinersStatusCount(usrname: $usrname, mpn: $mpn) {
    dead
    warning
    active
  }
}`,
		Args: []Arg{argMPN, argSubaccount},
		bind: func(v Values) map[string]any {
			return map[string]any{"mpn": v.String("mpn"), "usrname": v.String("subaccount")}
		},
	})

	register(&Operation{
		Name:  "get-pool-hashrate",
		Short: "Current hashrate of the whole pool",
		Field: "getPoolHashrate",
		Document: `query getPoolHashrate($mpn: MiningProfileName!, $orgSlug: String!) {
  getPoolHashrate(mpn: $mpn, orgSlug: $orgSlug)
}`,
		Args: []Arg{argMPN, {Name: "org-slug", Kind: KindString, Usage: "organization name (e.g. luxor)"}},
		bind: func(v Values) map[string]any {
			return map[string]any{"mpn": v.String("mpn"), "orgSlug": v.String("org-slug")}
		},
	})

	register(&Operation{
		Name:  "get-revenue",
		Short: "Revenue of a subaccount between two intervals",
		Long: `Revenue of a subaccount between two intervals.

Intervals are JSON IntervalInput objects, e.g. '{"days": 1}' or '{"hours": 6}'.`,
		Field: "getRevenue",
		Document: `query getRevenue($uname: String!, $cid: CurrencyProfileName!, $startInterval: IntervalInput!, $endInterval: IntervalInput!) {
  getRevenue(uname: $uname, cid: $cid, startInterval: $startInterval, endInterval: $endInterval)
}`,
		Args: []Arg{
			argSubaccount,
			argMPN,
			{Name: "start-interval", Kind: KindJSON, Usage: "JSON interval of time that has passed"},
			{Name: "end-interval", Kind: KindJSON, Usage: "JSON interval of time that has passed"},
		},
		bind: func(v Values) map[string]any {
			return map[string]any{
				"uname":         v.String("subaccount"),
				"cid":           v.String("mpn"),
				"startInterval": v["start-interval"],
				"endInterval":   v["end-interval"],
			}
		},
	})

	register(&Operation{
		Name:  "get-profile-active-worker-count",
		Short: "Number of active workers in the profile",
		Long: `Number of distinct active workers in the profile.

A worker is active if a share was recorded in the last 15 minutes.`,
		Field: "getProfileActiveWorkers",
		Document: `query getProfileActiveWorkers($mpn: MiningProfileName!) {
  getProfileActiveWorkers(mpn: $mpn)
}`,
		Args:     []Arg{argMPN},
		Resolver: true,
		bind: func(v Values) map[string]any {
			return map[string]any{"mpn": v.String("mpn")}
		},
	})

	register(&Operation{
		Name:  "get-profile-inactive-worker-count",
		Short: "Number of inactive workers in the profile",
		Long: `Number of distinct inactive workers in the profile.

A worker is inactive if no share was recorded in the last 15 minutes.`,
		Field: "getProfileInactiveWorkers",
		Document: `query getProfileInactiveWorkers($mpn: MiningProfileName!) {
  getProfileInactiveWorkers(mpn: $mpn)
}`,
		Args:     []Arg{argMPN},
		Resolver: true,
		bind: func(v Values) map[string]any {
			return map[string]any{"mpn": v.String("mpn")}
		},
	})

	register(&Operation{
		Name:  "get-transaction-history",
		Short: "On-chain transactions of a subaccount and currency",
		Field: "getTransactionHistory",
		Document: `query getTransactionHistory($uname: String!, $cid: CurrencyProfileName!, $first: Int) {
  getTransactionHistory(uname: $uname, cid: $cid, first: $first, orderBy: CREATED_AT_DESC) {
    edges {
      node {
        createdAt
        amount
        status
        transactionId
      }
    }
  }
}`,
		Args: []Arg{
			argSubaccount,
			{Name: "cid", Kind: KindString, Usage: "currency identifier, the coin ticker"},
			argFirst,
		},
		Resolver: true,
		bind: func(v Values) map[string]any {
			return map[string]any{"uname": v.String("subaccount"), "cid": v.String("cid"), "first": v.Int("first")}
		},
	})

	register(&Operation{
		Name:  "get-hashrate-score-history",
		Short: "Daily earnings, scoring hashrate and efficiency of a subaccount",
		Field: "getHashrateScoreHistory",
		Document: `query getHashrateScoreHistory($mpn: MiningProfileName!, $uname: String!, $first: Int) {
  getHashrateScoreHistory(mpn: $mpn, uname: $uname, first: $first, orderBy: DATE_DESC) {
    nodes {
      date
      hashrate
      efficiency
      revenue
    }
  }
}`,
		Args: []Arg{argSubaccount, argMPN, argFirst},
		bind: func(v Values) map[string]any {
			return map[string]any{"uname": v.String("subaccount"), "mpn": v.String("mpn"), "first": v.Int("first")}
		},
	})

	register(&Operation{
		Name:  "get-revenue-ph",
		Short: "Average hashprice per PH over the last 24 hours",
		Field: "getRevenuePh",
		Document: `query getRevenuePh($mpn: MiningProfileName!) {
  getRevenuePh(mpn: $mpn)
}`,
		Args: []Arg{argMPN},
		bind: func(v Values) map[string]any {
			return map[string]any{"mpn": v.String("mpn")}
		},
	})

	register(&Operation{
		Name:  "create-custom-request",
		Short: "Send an arbitrary GraphQL query",
		Long: `Send an arbitrary GraphQL query with JSON-encoded variables.

Example:
  luxor create-custom-request 'query q($mpn: MiningProfileName!) { getRevenuePh(mpn: $mpn) }' '{"mpn": "BTC"}'`,
		Args: []Arg{
			{Name: "query", Kind: KindString, Usage: "GraphQL document to execute"},
			{Name: "params", Kind: KindString, Usage: `JSON object of variables, e.g. '{"argument": "value"}'`},
		},
		build: func(v Values) (Call, error) {
			return Custom(v.String("query"), v.String("params"))
		},
	})
}
