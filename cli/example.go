package cli

const exampleConfig string = `# logcast.yaml
message: Hello, World!

# Loggers to discover, in broadcast order. All registered loggers, if not set.
catalog: [console, file, email]

# Explicit loggers. Discovery is not used, if set.
# loggers:
#   - type: console
#     sink: stderr
#   - type: file
#     path: ./messages.log
#   - type: email
#     server: smtp.example.com:25
#     to: [ops@example.com]

monitoring:
  expvar:
    enabled: false
    endpoint: ":1234"
    path: /debug/vars
`
